//go:build tools

package main

// генерация docs/swagger.json: swag init --outputTypes json
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
