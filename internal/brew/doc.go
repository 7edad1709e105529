// Package brew defines the coffee and brew log types exchanged with the
// brew log service, plus the client-side validation that runs before any
// request is sent.
//
// Validation mirrors the limits the service enforces so that obviously
// invalid input never costs a round trip:
//
//   - coffee weight 0-200 g, water weight 0-3000 g
//   - water temperature 0-100 °C
//   - brew time 0-60 min / 0-59 s, at most 3600 s in total
//   - rating 1-5
//
// All JSON field names follow the service's camelCase wire format.
package brew
