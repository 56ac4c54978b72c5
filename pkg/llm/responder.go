package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Chatter is the completion surface the Responder needs; *Client satisfies it.
type Chatter interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

const respondSystemPrompt = `تو یک دستیار مالی فارسی‌زبان هستی. کاربر درباره قیمت ارز، طلا، سکه، ارز دیجیتال یا سهام سوال می‌پرسد.
داده‌های بازیابی‌شده از پایگاه داده در اختیارت قرار می‌گیرد. فقط بر اساس همین داده‌ها پاسخ بده و هیچ عدد یا تاریخی از خودت نساز.
پاسخ را کوتاه، دوستانه و به فارسی روان بنویس. اعداد و واحدها را دقیقاً همانطور که در داده آمده نگه دار.`

const correctSystemPrompt = `جمله زیر سوال یک کاربر درباره بازارهای مالی است. فقط غلط‌های املایی و نگارشی آن را اصلاح کن.
نام ارز، طلا، سهام و تاریخ‌ها را به املای درست و رایجشان بنویس و چیزی به جمله اضافه یا از آن کم نکن. فقط جمله اصلاح‌شده را برگردان.`

// HistoryTurn is one prior exchange kept for conversational context.
type HistoryTurn struct {
	Question string
	Answer   string
}

// Responder rewrites template answers conversationally. All failures fall
// back to the input text so the bot never goes silent because of the LLM.
type Responder struct {
	client Chatter
}

// NewResponder wraps client; a nil client disables rewriting.
func NewResponder(client Chatter) *Responder {
	return &Responder{client: client}
}

// Enabled reports whether a completion backend is configured.
func (r *Responder) Enabled() bool {
	return r != nil && r.client != nil
}

// Respond phrases retrieved data as an answer to question. history carries
// the last few turns so follow-up questions resolve naturally.
func (r *Responder) Respond(ctx context.Context, question, retrieved string, history []HistoryTurn) string {
	if !r.Enabled() {
		return retrieved
	}

	msgs := []Message{{Role: "system", Content: respondSystemPrompt}}
	for _, turn := range history {
		msgs = append(msgs,
			Message{Role: "user", Content: turn.Question},
			Message{Role: "assistant", Content: turn.Answer},
		)
	}
	msgs = append(msgs, Message{
		Role: "user",
		Content: fmt.Sprintf("سوال کاربر: %s\n\nداده بازیابی‌شده:\n%s", question, retrieved),
	})

	resp, err := r.client.Chat(ctx, &ChatRequest{Messages: msgs})
	if err != nil {
		logx.WithContext(ctx).Slowf("llm: respond failed, using template answer: %v", err)
		return retrieved
	}
	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text
	}
	return retrieved
}

// Correct fixes spelling and typos in a user question so misspelled asset
// names still match the keyword tables.
func (r *Responder) Correct(ctx context.Context, text string) string {
	if !r.Enabled() || strings.TrimSpace(text) == "" {
		return text
	}

	resp, err := r.client.Chat(ctx, &ChatRequest{
		Messages: []Message{
			{Role: "system", Content: correctSystemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		logx.WithContext(ctx).Slowf("llm: correct failed, keeping original text: %v", err)
		return text
	}
	if fixed := strings.TrimSpace(resp.Text()); fixed != "" {
		return fixed
	}
	return text
}
