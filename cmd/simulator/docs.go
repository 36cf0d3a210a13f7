package main

//go:generate swag init -g cmd/simulator/main.go -o docs

// @title           Loan Cash-Flow Simulator API
// @version         0.1.0
// @description     Amortization schedules, NPV/IRR valuation and Monte Carlo risk simulation for loan viability analysis.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
