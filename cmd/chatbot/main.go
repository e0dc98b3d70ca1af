// Command chatbot is a friendly command-line chatbot.
package main

import "github.com/diogo/chatbot/internal/commands"

func main() {
	commands.Execute()
}
