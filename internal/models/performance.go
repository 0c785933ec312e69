package models

// PerformanceSummary correlates a vehicle's delivered DC energy with its
// mapped meter's consumed AC energy over a fixed window.
type PerformanceSummary struct {
	VehicleID string         `json:"vehicleId"`
	Period    string         `json:"period"`
	Energy    EnergySummary  `json:"energy"`
	Battery   BatterySummary `json:"battery"`
}

// EnergySummary holds window aggregates, each rounded to two decimals.
type EnergySummary struct {
	ACConsumed      float64 `json:"acConsumed"`
	DCDelivered     float64 `json:"dcDelivered"`
	EfficiencyRatio float64 `json:"efficiencyRatio"`
}

// BatterySummary holds battery aggregates for the window.
type BatterySummary struct {
	AvgTemperature float64 `json:"avgTemperature"`
}
