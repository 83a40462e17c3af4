package booking

import (
	"fmt"
	"time"
)

// Notification text is a presentation concern: the slot value stored and
// compared by the core is never derived from these strings.

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func bookedMessage(locale, clientName string, slot time.Time) string {
	if locale == "pt-BR" {
		return fmt.Sprintf("Novo agendamento de %s para o dia %s", clientName, formatPT(slot))
	}
	return fmt.Sprintf("New appointment from %s for %s", clientName, formatEN(slot))
}

func canceledMessage(locale, clientName string, slot time.Time) string {
	if locale == "pt-BR" {
		return fmt.Sprintf("%s cancelou o agendamento do dia %s", clientName, formatPT(slot))
	}
	return fmt.Sprintf("%s canceled the appointment of %s", clientName, formatEN(slot))
}

// formatPT renders "10 de março, às 14:00h".
func formatPT(t time.Time) string {
	return fmt.Sprintf("%d de %s, às %02d:%02dh",
		t.Day(), ptMonths[t.Month()-1], t.Hour(), t.Minute())
}

// formatEN renders "March 10 at 14:00".
func formatEN(t time.Time) string {
	return t.Format("January 2 at 15:04")
}
