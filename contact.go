package main

import (
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// contactForm mirrors the fields of the contact section. Only presence
// (and the email shape) is checked; the message goes nowhere.
type contactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"required"`
	Message string `form:"message" binding:"required"`
}

type contactView struct {
	Values  contactForm
	Errors  map[string]string
	Success string
}

var stripTags = bluemonday.StrictPolicy()

var contactFieldNames = map[string]string{
	"Name":    "name",
	"Email":   "email",
	"Subject": "subject",
	"Message": "message",
}

func (f contactForm) sanitized() contactForm {
	// Sanitize escapes entities; templates escape again on output.
	clean := func(s string) string { return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(s))) }
	return contactForm{
		Name:    clean(f.Name),
		Email:   clean(f.Email),
		Subject: clean(f.Subject),
		Message: clean(f.Message),
	}
}

// validationMessages maps binding errors to per-field messages keyed by
// form field name.
func validationMessages(err error) map[string]string {
	msgs := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		msgs["form"] = "Could not read the form. Please try again."
		return msgs
	}
	for _, fe := range verrs {
		field := contactFieldNames[fe.Field()]
		switch fe.Tag() {
		case "email":
			msgs[field] = "Please enter a valid email address."
		default:
			msgs[field] = "This field is required."
		}
	}
	return msgs
}

func (s *server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title":   "Contact Me",
		"Contact": contactView{},
	})
}

func (s *server) handleContact(c *gin.Context) {
	var form contactForm
	err := c.ShouldBind(&form)
	form = form.sanitized()
	var verrs validator.ValidationErrors
	if err == nil || errors.As(err, &verrs) {
		// Markup-only input sanitises down to nothing.
		err = binding.Validator.ValidateStruct(&form)
	}
	s.trackInteraction(c, kindContactCheck, "")

	// Errors render with 200 so HTMX swaps the fragment in.
	if err != nil {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"Contact": contactView{Values: form, Errors: validationMessages(err)},
		})
		return
	}

	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Contact": contactView{
			Success: "Thanks, " + form.Name + "! Everything looks good. This form is not connected to a mailbox yet, so please email " + s.email() + " directly.",
		},
	})
}
