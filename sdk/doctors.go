package arogo

import (
	"context"
	"net/http"
	"net/url"
)

// DoctorsService reads the doctor directory.
type DoctorsService struct {
	client *Client
}

// Doctor is one directory entry.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     int    `json:"experience,omitempty"`
	Fees           int    `json:"fees,omitempty"`
	About          string `json:"about,omitempty"`
	Available      bool   `json:"available"`
}

// ListDoctorsRequest filters the directory.
type ListDoctorsRequest struct {
	Specialization string
}

type doctorList struct {
	Doctors []Doctor `json:"doctors"`
}

// List returns doctors, optionally filtered by specialization.
func (s *DoctorsService) List(ctx context.Context, req *ListDoctorsRequest) ([]Doctor, error) {
	path := "/v1/doctors"
	if req != nil && req.Specialization != "" {
		path += "?specialization=" + url.QueryEscape(req.Specialization)
	}

	var list doctorList
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list.Doctors, nil
}

// Get returns one doctor by id.
func (s *DoctorsService) Get(ctx context.Context, id string) (*Doctor, error) {
	if id == "" {
		return nil, NewInvalidRequestError("id is required")
	}

	var doc Doctor
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/doctors/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
