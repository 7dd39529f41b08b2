package cmd

// HTTP modules register themselves with the api registry on import.
import (
	_ "focolog/api/actionplan"
	_ "focolog/api/dashboard"
	_ "focolog/api/delivery"
	_ "focolog/api/graphql"
	_ "focolog/api/inventory"
	_ "focolog/api/purchase"
	_ "focolog/api/realtime"
	_ "focolog/api/report"
	_ "focolog/api/request"
	_ "focolog/api/session"
	_ "focolog/api/stock"
	_ "focolog/api/supplier"
	_ "focolog/api/training"
	_ "focolog/api/users"
	_ "focolog/html"
)
