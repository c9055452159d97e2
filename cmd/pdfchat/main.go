// pdfchat is a terminal client for chatting with a PDF through the Perplexity API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/tnglemongrass/pdfchat/internal/chat"
	"github.com/tnglemongrass/pdfchat/internal/config"
	"github.com/tnglemongrass/pdfchat/internal/perplexity"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	session, err := chat.NewSession(cfg, os.Stdout)
	if err != nil {
		if errors.Is(err, perplexity.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Error: no API key configured. Set PERPLEXITY_API_KEY or use --api-key.")
		} else {
			fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		}
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pdfchat> ",
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("pdfchat - chat with your PDF (Perplexity)")
	fmt.Printf("Model: %s | API: %s\n", cfg.Model, cfg.BaseURL)
	fmt.Println("Type /help for commands, /load <file.pdf> to add a document.")

	readInput := func(_ string) (string, error) {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return line, err
	}

	if err := session.Run(readInput); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := home + "/.pdfchat"
	_ = os.MkdirAll(dir, 0755)
	return dir + "/history"
}
