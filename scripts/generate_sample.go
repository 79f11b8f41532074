package main

import (
	"fmt"
	mrand "math/rand"
	"os"
	"strings"

	"github.com/mithrel/confchat/pkg/chat"
)

var (
	topics = []string{"React Server Components", "Suspense", "the compiler", "React Native", "hooks", "concurrent rendering"}
	rooms  = []string{"Main Hall", "Hall B", "Workshop Room", "Lounge"}
	langs  = []string{"jsx", "tsx", "js", ""}
)

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const turns = 200
	out := make(chat.Transcript, 0, turns*2+1)
	out = append(out, chat.Message{Role: chat.RoleAssistant, Content: chat.DefaultGreeting})

	for i := 0; i < turns; i++ {
		topic := topics[mr.Intn(len(topics))]
		out = append(out, chat.Message{
			Role:    chat.RoleUser,
			Content: fmt.Sprintf("Which talks cover %s? (question %03d)", topic, i+1),
		})
		out = append(out, chat.Message{Role: chat.RoleAssistant, Content: sampleReply(mr, topic)})
	}

	if err := chat.WriteTranscript(os.Stdout, out); err != nil {
		panic(err)
	}
}

// sampleReply mixes every block and span kind the parser knows.
func sampleReply(r *mrand.Rand, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Talks on %s\n\n", topic)
	n := 1 + r.Intn(4)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "- **%02d:%02d** in *%s*\n", 9+r.Intn(8), 15*r.Intn(4), rooms[r.Intn(len(rooms))])
	}
	if r.Float64() < 0.4 {
		fmt.Fprintf(&b, "\n### Example\n```%s\nconst value = use(promise);\n```\n", langs[r.Intn(len(langs))])
	}
	if r.Float64() < 0.3 {
		b.WriteString("\nRemember to check `schedule.json` for changes.")
	}
	return b.String()
}
