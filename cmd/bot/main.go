// Command bot is an interactive terminal front end: it reads Persian
// questions from stdin and prints the answers, keeping a short conversation
// history for the LLM responder.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/config"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/svc"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/llm"
)

const historyDepth = 5

var (
	configFile = flag.String("f", "etc/chatbot.yaml", "the config file")
	question   = flag.String("q", "", "answer a single question and exit")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	ctx := svc.NewServiceContext(*cfg)

	if strings.TrimSpace(*question) != "" {
		result := ctx.Orchestrator.Answer(context.Background(), *question, nil)
		fmt.Println(result.Text)
		return
	}

	fmt.Println("ربات مالی آماده است. سوال خود را بنویسید (خروج برای پایان):")
	var history []llm.HistoryTurn
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "خروج" || strings.EqualFold(line, "exit") {
			fmt.Println("خداحافظ 👋")
			return
		}

		result := ctx.Orchestrator.Answer(context.Background(), line, history)
		fmt.Println(result.Text)

		history = append(history, llm.HistoryTurn{Question: line, Answer: result.Text})
		if len(history) > historyDepth {
			history = history[len(history)-historyDepth:]
		}
	}
}
