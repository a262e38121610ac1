// Package widget holds the interactive state behind the portfolio page:
// the project image carousel, the hire-me dropdown, the service modal,
// the toast notification and the email-copy action that feeds it.
//
// Every type here is plain in-memory state. The HTTP layer keeps one set
// per visitor and renders it into HTML fragments.
package widget
