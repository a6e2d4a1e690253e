package routes

import "github.com/gofiber/fiber/v3"

func registerPublic(r fiber.Router, reg *Registry) {
	if reg.Auth != nil {
		r.Post("/login", reg.Auth.Login)
		r.Post("/logout", reg.Auth.Logout)
		r.Post("/forgotpassword", reg.Auth.ForgotPassword)
		r.Post("/resetpassword", reg.Auth.ResetPassword)
	}
	if reg.Contact != nil {
		r.Post("/contact", reg.Contact.Create)
	}
	if reg.Posting != nil {
		r.Get("/job-posting", reg.Posting.ListOpen)
	}
	if reg.Career != nil {
		r.Post("/career", reg.Career.Apply)
	}
}

func registerAdmin(r fiber.Router, reg *Registry) {
	if reg.Auth != nil {
		r.Get("/userAdmin", reg.Auth.CurrentAdmin)
	}
	if reg.Contact != nil {
		r.Get("/contact", reg.Contact.List)
		r.Delete("/contact/:id", reg.Contact.Delete)
	}
	if reg.Posting != nil {
		r.Get("/job-posting/all", reg.Posting.ListAll)
		r.Post("/job-posting", reg.Posting.Create)
		r.Delete("/job-posting/:id", reg.Posting.Delete)
	}
	if reg.Career != nil {
		r.Get("/career", reg.Career.List)
		r.Get("/career/:id", reg.Career.Get)
		r.Get("/career/:id/resume", reg.Career.DownloadResume)
		r.Patch("/career/:id/status", reg.Career.UpdateStatus)
		r.Put("/career/:id/interview", reg.Career.ScheduleInterview)
		r.Delete("/career/:id", reg.Career.Delete)
	}
}
