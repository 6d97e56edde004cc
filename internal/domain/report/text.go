package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/aeris/internal/domain/model"
)

const (
	unavailable   = "No disponible"
	unknownStatus = "Desconocido"
	rule          = "----------------------------------------------------------"
	indent        = "    "
)

var (
	accent = lipgloss.Color("#2196F3")
	muted  = lipgloss.Color("#8A8F98")
	warn   = lipgloss.Color("#FFC107")
)

// TextOption configures Text.
type TextOption func(*textOptions)

type textOptions struct {
	renderer *lipgloss.Renderer
}

// WithRenderer forces a lipgloss renderer, e.g. one with a fixed color
// profile. By default the renderer is derived from the writer, so plain
// files and buffers get no escape codes.
func WithRenderer(r *lipgloss.Renderer) TextOption {
	return func(o *textOptions) { o.renderer = r }
}

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	rule    lipgloss.Style
	note    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(accent),
		section: r.NewStyle().Bold(true),
		rule:    r.NewStyle().Foreground(muted),
		note:    r.NewStyle().Foreground(warn),
	}
}

// Text writes the terminal report for r.
func Text(w io.Writer, r *model.Result, opts ...TextOption) error {
	o := textOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = lipgloss.NewRenderer(w)
	}
	st := newStyles(o.renderer)

	var b strings.Builder
	f := r.Flight
	if f == nil {
		f = &model.FlightRecord{}
	}

	var flightIATA, airline *string
	if f.Flight != nil {
		flightIATA = f.Flight.IATA
	}
	if f.Airline != nil {
		airline = f.Airline.Name
	}
	status := unknownStatus
	if f.FlightStatus != nil && *f.FlightStatus != "" {
		status = capitalize(*f.FlightStatus)
	}

	b.WriteString("\n")
	b.WriteString(st.title.Render(fmt.Sprintf("✈️  Resumen del Vuelo %s - %s | Estado: %s", text(flightIATA), text(airline), status)))
	b.WriteString("\n" + st.rule.Render(rule) + "\n")

	b.WriteString(st.section.Render("🛫 Salida:") + "\n")
	writeLeg(&b, f.Departure, nil, false)

	b.WriteString("\n" + st.section.Render("🛬 Llegada:") + "\n")
	if f.Arrival != nil {
		writeLeg(&b, &f.Arrival.Leg, f.Arrival.Baggage, true)
	} else {
		writeLeg(&b, nil, nil, true)
	}

	b.WriteString("\n")
	writeTelemetry(&b, st, r.Telemetry)

	if r.METAR != nil {
		b.WriteString("\n" + st.section.Render("🌦️  Meteorología (METAR):") + "\n")
		writeMETAR(&b, "Salida", r.METAR.Departure)
		writeMETAR(&b, "Llegada", r.METAR.Arrival)
	}

	b.WriteString(st.rule.Render(rule) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLeg(b *strings.Builder, leg *model.Leg, baggage *string, withBaggage bool) {
	if leg == nil {
		leg = &model.Leg{}
	}
	fmt.Fprintf(b, "%sAeropuerto: %s\n", indent, text(leg.Airport))
	fmt.Fprintf(b, "%sTerminal: %s | Puerta: %s\n", indent, text(leg.Terminal), text(leg.Gate))
	if withBaggage {
		fmt.Fprintf(b, "%sRecogida Equipaje: %s\n", indent, text(baggage))
	}
	fmt.Fprintf(b, "%sHora Programada: %s\n", indent, timeText(leg.Scheduled))
	fmt.Fprintf(b, "%sHora Estimada:   %s\n", indent, timeText(leg.Estimated))
}

func writeTelemetry(b *strings.Builder, st styles, t *model.TelemetryRecord) {
	if t == nil {
		b.WriteString(st.section.Render("🛰️  Datos de Posicionamiento en Vivo (OpenSky):") + " ")
		b.WriteString(st.note.Render("No disponibles (el vuelo puede no estar en el aire o no tener datos en vivo en OpenSky)"))
		b.WriteString("\n")
		return
	}
	b.WriteString(st.section.Render("🛰️  Datos de Posicionamiento en Vivo (OpenSky):") + "\n")
	fmt.Fprintf(b, "%sLatitud: %s | Longitud: %s\n", indent, number(t.Latitude), number(t.Longitude))
	fmt.Fprintf(b, "%sAltitud: %s metros\n", indent, number(t.BaroAltitudeMeters))
	speed := unavailable
	if t.VelocityMPS != nil {
		speed = strconv.FormatFloat(KMH(*t.VelocityMPS), 'f', -1, 64)
	}
	fmt.Fprintf(b, "%sVelocidad: %s km/h\n", indent, speed)
}

func writeMETAR(b *strings.Builder, label string, w *model.WeatherResult) {
	switch {
	case w == nil:
		fmt.Fprintf(b, "%s%s: %s\n", indent, label, unavailable)
	case w.Err != nil:
		fmt.Fprintf(b, "%s%s: %s\n", indent, label, w.Err.Message)
	case w.Record != nil && w.Record.RawText != "":
		fmt.Fprintf(b, "%s%s: %s\n", indent, label, w.Record.RawText)
	default:
		fmt.Fprintf(b, "%s%s: %s\n", indent, label, unavailable)
	}
}

func text(p *string) string {
	if p == nil || *p == "" {
		return unavailable
	}
	return *p
}

func timeText(p *string) string {
	return DisplayTime(text(p))
}

func number(p *float64) string {
	if p == nil {
		return unavailable
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
