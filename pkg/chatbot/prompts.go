package chatbot

import "fmt"

// ToolNameSearchPlaces is the single tool the model may invoke.
const ToolNameSearchPlaces = "search_places"

// Fixed user-facing fallback texts. Every failure path of the orchestrator
// resolves to one of these; raw error details stay in the logs and the error
// event stream, never in the answer.
const (
	// MessageModelFailure is returned when a model call fails.
	MessageModelFailure = "Sorry, I ran into a problem while generating a response. Please try again in a moment."
	// MessageClarifyQuery is returned when the model invoked the search tool
	// without a usable query.
	MessageClarifyQuery = "I could not work out what to search for. Could you make your question a bit more specific?"
)

// UnsupportedToolMessage names the unknown tool the model tried to call.
func UnsupportedToolMessage(name string) string {
	return fmt.Sprintf("The model tried to call an unknown function: %s", name)
}

const taskPromptTemplate = `The user asked %q about the area around %q. To answer this question, search for suitable places first.

If the search returns places, recommend them using exactly this format:

[number]. [place name] ([category])
Address: [address]
Phone: [phone number, or 'no info' if absent]
Details: [detail URL, or 'no info' if absent]
Description: [a short description of the place's character, atmosphere or recommended menu, written by you]

Separate each recommended place with a blank line (two line breaks).

If the search returns no places, respond kindly along the lines of: 'Sorry, I could not find any places matching your request. Could you give me different search criteria?'`

// RenderTaskPrompt builds the initial user prompt for one question.
func RenderTaskPrompt(contextName, question string) string {
	return fmt.Sprintf(taskPromptTemplate, question, contextName)
}
