// @title           SmartHR API
// @version         1.0
// @description     Recruitment platform backend: accounts, candidate profiles, jobs, applications, interviews and labor-market analytics.
// @contact.name    SmartHR Team
// @contact.email   support@smarthr.kz
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

package main

import "smarthr_backend/internal/app"

func main() {
	app.Run()
}
