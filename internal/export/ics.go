package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

const icsStamp = "20060102T150405Z"

// WriteICS writes a single-event calendar for a reservation. Lines end in CRLF.
func WriteICS(w io.Writer, r *domain.Reservation, now time.Time) error {
	code := r.Code
	if code == "" {
		code = "-"
	}
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Mabe EV Demo//ES",
		"BEGIN:VEVENT",
		"UID:" + r.ID + "@mabe-demo",
		"DTSTAMP:" + now.UTC().Format(icsStamp),
		"DTSTART:" + r.StartAt.UTC().Format(icsStamp),
		"DTEND:" + r.EndAt.UTC().Format(icsStamp),
		fmt.Sprintf("SUMMARY:Carga EV (%s)", r.ConnectorType),
		fmt.Sprintf("DESCRIPTION:Reserva confirmada. Código: %s Objetivo SOC: %d%%", code, r.TargetSoc),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	_, err := io.WriteString(w, strings.Join(lines, "\r\n"))
	return err
}

// ICSFilename is the download name used for a reservation calendar.
func ICSFilename(r *domain.Reservation) string {
	return "reserva-" + r.ID + ".ics"
}
