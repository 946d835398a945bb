// Package live manages one logical connection to the realtime assistant
// endpoint.
//
// A Session multiplexes text and audio deltas arriving over a bidirectional
// websocket into completed turns: fragments accumulate in arrival order until
// the remote turn-complete signal, at which point the full text and the
// assembled WAV audio are delivered as events. Partial turns are never
// surfaced.
//
// Sessions are explicitly constructed and owned:
//
//	sess, err := live.Dial(ctx, live.SessionConfig{
//		Endpoint: endpoint,
//		APIKey:   key,
//		Model:    "models/gemini-2.0-flash-exp",
//	})
//	if err != nil {
//		return err
//	}
//	defer sess.Disconnect()
//
//	for ev := range sess.Events() {
//		switch ev := ev.(type) {
//		case *live.TextTurnEvent:
//			fmt.Println(ev.Text)
//		case *live.AudioTurnEvent:
//			play(ev.WAV)
//		case *live.ErrorEvent:
//			log.Println(ev.Err)
//		}
//	}
//
// All inbound handling runs on a single read loop, so turn-buffer appends and
// resets are atomic with respect to each other. Outbound sends may be called
// from any goroutine; they serialize on the underlying transport so at most
// one frame is in flight at a time.
package live
