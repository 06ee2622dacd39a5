// intent-debug is a small REPL for inspecting how the intent engine
// classifies and extracts from a message. Useful when tuning patterns:
//
//	go run ./cmd/intent-debug
//	> set a timer for 5 minutes
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/medassist/assistant-gateway/internal/intent"
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("intent-debug: type a message, Ctrl-D to exit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		dump(text)
	}
}

func dump(text string) {
	in := intent.Classify(text)
	fmt.Printf("kind=%s domain=%s action=%s\n", in.Kind, in.Domain, in.Action)

	switch in.Domain {
	case intent.DomainMedication:
		slots := intent.ExtractMedicationSlots(text)
		fmt.Printf("  name=%q dosage=%q frequency=%q time_of_day=%q\n",
			slots.Name, slots.Dosage, slots.Frequency, slots.TimeOfDay)

	case intent.DomainAppointment:
		slots := intent.ExtractAppointmentSlots(text, time.Now())
		fmt.Printf("  doctor=%q date=%q time=%q purpose=%q\n",
			slots.DoctorName, slots.Date, slots.Time, slots.Purpose)

	case intent.DomainTimer:
		slots := intent.ExtractTimerSlots(text)
		fmt.Printf("  duration=%d name=%q (%s)\n",
			slots.Duration, slots.Name, intent.FormatTime(slots.Duration))
	}
}
