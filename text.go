package main

var (
	AboutMe = `I am a full stack developer who enjoys taking an idea from a rough sketch to a product people
	actually use. Most of my work sits where a clean React interface meets a dependable API, and I care as much
	about how a page feels as about how the data behind it is modelled.
	I take on freelance work through the platforms linked above, or you can reach me directly below.`

	ContactIntro = `Have a project in mind or just want to say hello? Drop me a message or copy my email address.`
)
