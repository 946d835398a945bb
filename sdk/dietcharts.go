package arogo

import (
	"context"
	"net/http"
)

// DietChartsService generates AI diet charts for a patient profile.
type DietChartsService struct {
	client *Client
}

// DietChartRequest describes the patient profile the chart is built for.
type DietChartRequest struct {
	PatientID  string   `json:"patient_id"`
	Age        int      `json:"age"`
	WeightKg   float64  `json:"weight_kg"`
	HeightCm   float64  `json:"height_cm"`
	Goal       string   `json:"goal,omitempty"` // e.g. "weight_loss", "diabetic"
	Conditions []string `json:"conditions,omitempty"`
}

// DietChart is the generated plan.
type DietChart struct {
	ID       string     `json:"id"`
	Summary  string     `json:"summary"`
	Calories int        `json:"calories"`
	Meals    []DietMeal `json:"meals"`
}

// DietMeal is one meal entry of a chart.
type DietMeal struct {
	Name  string   `json:"name"` // e.g. "breakfast"
	Items []string `json:"items"`
}

// Generate requests a diet chart for the given profile.
func (s *DietChartsService) Generate(ctx context.Context, req *DietChartRequest) (*DietChart, error) {
	if req == nil {
		return nil, NewInvalidRequestError("req must not be nil")
	}
	if req.PatientID == "" {
		return nil, NewInvalidRequestError("patient_id is required")
	}

	var chart DietChart
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/diet-charts", req, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}
