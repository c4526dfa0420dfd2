package main

import (
	comparison "Sediment/internal/calc/comparison"
	recommend "Sediment/internal/calc/premium/recommend"
	shields "Sediment/internal/calc/shields"
	session "Sediment/internal/session"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

const usage = "Usage: /shields <water density kg/m3> <sediment density kg/m3> <grain diameter m> <shear velocity m/s> <critical Shields>\n" +
	"/list shows this chat's comparison."

// chatTTL is how long a silent chat keeps its comparison.
const chatTTL = 7 * 24 * time.Hour

var client = &http.Client{Timeout: 30 * time.Second}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}
	token := os.Getenv("TOKEN_BOT")
	if token == "" {
		log.Fatal("TOKEN_BOT missing")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	chats := session.NewStore(chatTTL)
	go chats.Run(ctx, time.Hour)
	offset := 0
	for ctx.Err() == nil {
		updates, err := getUpdates(ctx, token, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Println("getUpdates error:", err)
			time.Sleep(2 * time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			reply := handleCommand(chats, u.Message.Chat.ID, u.Message.Text)
			if reply != "" {
				sendMessage(token, u.Message.Chat.ID, reply)
			}
		}
	}
	log.Println("Bot stopped")
}

func chatSession(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

// handleCommand returns the reply for a chat message, or "" to stay silent.
func handleCommand(chats *session.Store, chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.SplitN(fields[0], "@", 2)[0]
	switch cmd {
	case "/start", "/help":
		return usage
	case "/shields":
		in, err := parseInput(fields[1:])
		if err != nil {
			return err.Error() + "\n" + usage
		}
		res, err := shields.Calculate(in)
		if err != nil {
			return "Cannot evaluate: " + err.Error()
		}
		_, n := chats.Log(chatSession(chatID)).Append(in, res)
		return fmt.Sprintf("%s\n%s\nSaved as comparison %d.",
			shields.Summary(res), recommend.Stability(res.ShieldsNumber, res.CriticalShields), n)
	case "/list":
		return formatList(comparison.List(comparison.SessionEntries(chats, chatSession(chatID))))
	default:
		return ""
	}
}

func parseInput(args []string) (shields.Input, error) {
	if len(args) != 5 {
		return shields.Input{}, fmt.Errorf("expected 5 numbers, got %d", len(args))
	}
	var v [5]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.ReplaceAll(a, ",", "."), 64)
		if err != nil {
			return shields.Input{}, fmt.Errorf("%q is not a number", a)
		}
		v[i] = f
	}
	return shields.Input{
		WaterDensityKgM3:    v[0],
		SedimentDensityKgM3: v[1],
		GrainDiameterM:      v[2],
		ShearVelocityMS:     v[3],
		CriticalShields:     v[4],
	}, nil
}

func formatList(list comparison.ListResponse) string {
	if list.Count == 0 {
		return "No comparisons yet."
	}
	var b strings.Builder
	b.WriteString("Comparison Results\n")
	for _, it := range list.Items {
		fmt.Fprintf(&b, "%d. θ = %.6f, θcr = %.6f: %s\n", it.Number, it.Result.ShieldsNumber, it.Result.CriticalShields, it.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func getUpdates(ctx context.Context, token string, offset int) ([]Update, error) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?timeout=20&offset=%d", token, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram returned status %s", res.Status)
	}
	return out.Result, nil
}

func sendMessage(token string, chatID int64, text string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	payload := map[string]any{"chat_id": chatID, "text": text}
	b, _ := json.Marshal(payload)
	res, err := client.Post(url, "application/json", strings.NewReader(string(b)))
	if err != nil {
		log.Println("sendMessage error:", err)
		return
	}
	res.Body.Close()
}
