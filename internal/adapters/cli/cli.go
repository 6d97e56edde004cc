// Package cli renders flight searches on a terminal and drives the
// interactive assistant.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/internal/domain/report"
	"github.com/okian/aeris/pkg/logger"
)

// manualDateLayout is how people type dates at the prompt (DD-MM-AAAA);
// leading zeros are optional.
const manualDateLayout = "2-1-2006"

// Searcher runs one flight search.
type Searcher interface {
	Search(ctx context.Context, q model.FlightQuery) (*model.Result, error)
}

// RunSearch resolves q and prints the report to w. The lookup error is
// returned unchanged so callers can set the exit status.
func RunSearch(ctx context.Context, s Searcher, q model.FlightQuery, w io.Writer, opts ...report.TextOption) error {
	res, err := s.Search(ctx, q)
	if err != nil {
		return err
	}
	return report.Text(w, res, opts...)
}

// Prompt is the interactive assistant. It asks for a date and a search mode,
// runs the search, and offers a retry on failure.
type Prompt struct {
	searcher Searcher
	in       *bufio.Reader
	out      io.Writer
	now      func() time.Time
	log      logger.Logger
	text     []report.TextOption
}

// Option configures a Prompt.
type Option func(*Prompt)

// WithInput reads answers from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(p *Prompt) {
		if r != nil {
			p.in = bufio.NewReader(r)
		}
	}
}

// WithOutput writes prompts and reports to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Prompt) {
		if w != nil {
			p.out = w
		}
	}
}

// WithClock sets the clock used for the "today" choice.
func WithClock(now func() time.Time) Option {
	return func(p *Prompt) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Prompt) {
		if l != nil {
			p.log = l
		}
	}
}

// WithTextOptions passes options through to the report renderer.
func WithTextOptions(opts ...report.TextOption) Option {
	return func(p *Prompt) { p.text = opts }
}

// New builds a Prompt over s.
func New(s Searcher, opts ...Option) *Prompt {
	p := &Prompt{
		searcher: s,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// errInvalidChoice sends the loop back to the start.
var errInvalidChoice = errors.New("invalid choice")

// Run drives the assistant until a search succeeds, the user declines a
// retry, or input ends. End of input is not an error.
func (p *Prompt) Run(ctx context.Context) error {
	p.println("\n--- Rastreador de Vuelos Aeris ---")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, err := p.ask()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errInvalidChoice):
			continue
		case err != nil:
			return err
		}

		p.println("\n--- Resultado de la Búsqueda ---")
		err = RunSearch(ctx, p.searcher, q, p.out, p.text...)
		if err == nil {
			p.println("\nBúsqueda completada con éxito.")
			return nil
		}
		p.log.Warn(ctx, "interactive search failed", logger.String("query", q.String()), logger.Error(err))
		p.printf("Error: %s\n", err)

		answer, err := p.readLine("No se encontraron datos o hubo un error. ¿Quieres intentarlo de nuevo? (s/n): ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.ToLower(answer) != "s" {
			return nil
		}
	}
}

// ask collects one query: date first, then the search mode.
func (p *Prompt) ask() (model.FlightQuery, error) {
	date, err := p.askDate()
	if err != nil {
		return model.FlightQuery{}, err
	}
	if date != "" {
		p.printf("Fecha seleccionada: %s\n", date)
	} else {
		p.println("No se especificará la fecha de búsqueda.")
	}

	p.println("\n--- Tipo de Búsqueda ---")
	p.println("1. Buscar por número de vuelo")
	p.println("2. Buscar por aeropuertos de salida y llegada")
	choice, err := p.readLine("Elige una opción (1-2): ")
	if err != nil {
		return model.FlightQuery{}, err
	}

	q := model.FlightQuery{Date: date}
	switch choice {
	case "1":
		flight, err := p.readLine("Número de vuelo (ej. AA1): ")
		if err != nil {
			return model.FlightQuery{}, err
		}
		if flight == "" {
			p.println("El número de vuelo no puede estar vacío.")
			return model.FlightQuery{}, errInvalidChoice
		}
		q.Flight = flight
	case "2":
		dep, err := p.readLine("Código IATA aeropuerto de salida (ej. JFK): ")
		if err != nil {
			return model.FlightQuery{}, err
		}
		arr, err := p.readLine("Código IATA aeropuerto de llegada (ej. LAX): ")
		if err != nil {
			return model.FlightQuery{}, err
		}
		if dep == "" || arr == "" {
			p.println("Debes introducir ambos códigos IATA de aeropuerto.")
			return model.FlightQuery{}, errInvalidChoice
		}
		q.Departure, q.Arrival = dep, arr
	default:
		p.println("Opción no válida. Por favor, elige 1 o 2.")
		return model.FlightQuery{}, errInvalidChoice
	}
	return q, nil
}

// askDate returns YYYY-MM-DD, or "" when the user leaves the date open.
func (p *Prompt) askDate() (string, error) {
	for {
		p.println("\n--- Seleccionar Fecha ---")
		p.println("1. Fecha de hoy")
		p.println("2. Introducir fecha manualmente (DD-MM-AAAA)")
		p.println("3. No especificar fecha (solo para vuelos activos)")
		choice, err := p.readLine("Elige una opción (1-3): ")
		if err != nil {
			return "", err
		}

		switch choice {
		case "1":
			return p.now().Format(model.DateLayout), nil
		case "2":
			for {
				raw, err := p.readLine("Introduce la fecha (DD-MM-AAAA): ")
				if err != nil {
					return "", err
				}
				d, err := time.Parse(manualDateLayout, raw)
				if err == nil {
					return d.Format(model.DateLayout), nil
				}
				p.println("Formato de fecha incorrecto. Usa DD-MM-AAAA.")
			}
		case "3":
			return "", nil
		default:
			p.println("Opción no válida. Por favor, elige 1, 2 o 3.")
		}
	}
}

// readLine prints prompt and returns the trimmed answer. A final line
// without a newline is still returned; io.EOF comes on the next call.
func (p *Prompt) readLine(prompt string) (string, error) {
	_, _ = io.WriteString(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompt) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

func (p *Prompt) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
