package narrative

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acuchart/acuchart/internal/domain/chart"
)

// ChartStore is the slice of the chart service the synthesizer needs to
// load a chart and write back the fields it produced.
type ChartStore interface {
	Get(ctx context.Context, accountID uuid.UUID, fileNo string) (*chart.Chart, error)
	Save(ctx context.Context, accountID uuid.UUID, ch *chart.Chart, expectedVersion int) error
}

// Service synthesizes clinical narratives from a stored chart. Every
// operation is all-or-nothing: when the model call or the parse fails
// the stored chart is left exactly as it was.
type Service struct {
	client Client
	charts ChartStore
	log    zerolog.Logger
}

func NewService(client Client, charts ChartStore, log zerolog.Logger) *Service {
	return &Service{client: client, charts: charts, log: log}
}

// PresentIllness generates the HPI paragraph for the chart and stores
// it in the chief-complaint section. Returns the updated chart.
func (s *Service) PresentIllness(ctx context.Context, accountID uuid.UUID, fileNo string) (*chart.Chart, error) {
	ch, err := s.charts.Get(ctx, accountID, fileNo)
	if err != nil {
		return nil, err
	}

	text, err := s.client.Complete(ctx, presentIllnessPrompt(ch), false)
	if err != nil {
		return nil, fmt.Errorf("present illness: %w", err)
	}

	ch.Data.ChiefComplaint.PresentIllness = text
	if err := s.charts.Save(ctx, accountID, ch, ch.Version); err != nil {
		return nil, err
	}

	s.log.Info().Str("file_no", fileNo).Msg("present illness synthesized")
	return ch, nil
}

// DiagnosisPlan generates a structured TCM diagnosis and treatment plan
// and applies it to the chart's diagnosis section. Returns the updated
// chart.
func (s *Service) DiagnosisPlan(ctx context.Context, accountID uuid.UUID, fileNo string) (*chart.Chart, error) {
	ch, err := s.charts.Get(ctx, accountID, fileNo)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.Complete(ctx, diagnosisPrompt(ch), true)
	if err != nil {
		return nil, fmt.Errorf("diagnosis: %w", err)
	}
	fields, err := parseDiagnosis(raw)
	if err != nil {
		return nil, fmt.Errorf("diagnosis: %w", err)
	}

	d := &ch.Data.Diagnosis
	d.EightPrinciples = fields.EightPrinciples
	d.Etiology = fields.Etiology
	d.TCMDiagnosis = fields.TCMDiagnosis
	d.TreatmentPrinciple = fields.TreatmentPrinciple
	d.AcupuncturePoints = fields.AcupuncturePoints
	d.HerbalTreatment = fields.HerbalTreatment
	d.SelectedTreatment = fields.SelectedTreatment
	d.OtherTreatmentText = fields.OtherTreatmentText

	if err := s.charts.Save(ctx, accountID, ch, ch.Version); err != nil {
		return nil, err
	}

	s.log.Info().Str("file_no", fileNo).Msg("diagnosis synthesized")
	return ch, nil
}

// SOAPNote generates a SOAP clinical note from the de-identified visit
// data. The note is returned to the caller and never stored.
func (s *Service) SOAPNote(ctx context.Context, accountID uuid.UUID, fileNo string) (string, error) {
	ch, err := s.charts.Get(ctx, accountID, fileNo)
	if err != nil {
		return "", err
	}

	note, err := s.client.Complete(ctx, soapPrompt(ch), false)
	if err != nil {
		return "", fmt.Errorf("soap note: %w", err)
	}
	return note, nil
}
