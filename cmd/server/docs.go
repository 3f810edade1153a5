package main

// @title Trade Journal API
// @version 1.0
// @description Trading journal backend: records, analytics, statement import and remote state sync.
// @BasePath /

//go:generate swag init -g cmd/server/docs.go -o docs
