package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/EmilioNacato/DashboardProcesador/internal/client"
	"github.com/EmilioNacato/DashboardProcesador/internal/model"
	"github.com/EmilioNacato/DashboardProcesador/internal/normalize"
	"github.com/EmilioNacato/DashboardProcesador/internal/timeutil"
)

// fraudFallbackDays is the window scanned when the dedicated fraud endpoint
// is down.
const fraudFallbackDays = 30

// TransactionService reconciles the processor's raw, inconsistently-shaped
// responses into canonical transaction views.
type TransactionService struct {
	processor *client.Processor
}

func NewTransactionService(processor *client.Processor) *TransactionService {
	return &TransactionService{processor: processor}
}

// QueryRange fetches and normalizes every transaction created inside
// [from, to]. An upstream failure comes back as an error, so callers can
// tell "no data" from "fetch failed".
func (s *TransactionService) QueryRange(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	desde := timeutil.FormatQuery(from, false)
	hasta := timeutil.FormatQuery(to, true)

	records, err := s.processor.Recent(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("range query %s..%s: %w", desde, hasta, err)
	}

	txns := make([]model.Transaction, len(records))
	for i, rec := range records {
		txns[i] = normalizeRecord(rec)
	}
	return txns, nil
}

// GetByCode assembles the full detail view for one transaction. The primary
// record and the history log are fetched concurrently and each may fail on
// its own; either source alone can satisfy the merge. Primary-record fields
// win, gaps are back-filled from the newest then the oldest history event,
// and free-text messages are scanned as a last resort.
func (s *TransactionService) GetByCode(ctx context.Context, code string) (*model.Transaction, error) {
	var (
		record  map[string]any
		events  []map[string]any
		recErr  error
		histErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record, recErr = s.processor.Transaction(gctx, code)
		if recErr != nil {
			log.Warn().Err(recErr).Str("code", code).Msg("primary record unavailable")
		}
		return nil
	})
	g.Go(func() error {
		events, histErr = s.processor.History(gctx, code)
		if histErr != nil {
			log.Warn().Err(histErr).Str("code", code).Msg("history unavailable")
		}
		return nil
	})
	_ = g.Wait()

	if record == nil && len(events) == 0 {
		for _, err := range []error{recErr, histErr} {
			if err != nil && !errors.Is(err, client.ErrNotFound) {
				return nil, err
			}
		}
		return nil, fmt.Errorf("transaction %s: %w", code, client.ErrNotFound)
	}

	sortEventsNewestFirst(events)
	return mergeDetail(code, record, events), nil
}

// History returns the normalized status-transition log, newest first.
func (s *TransactionService) History(ctx context.Context, code string) ([]model.HistoryEvent, error) {
	events, err := s.processor.History(ctx, code)
	if err != nil {
		return nil, err
	}

	sortEventsNewestFirst(events)
	out := make([]model.HistoryEvent, len(events))
	for i, ev := range events {
		out[i] = normalizeEvent(ev)
	}
	return out, nil
}

// Fraudulent lists fraud-flagged transactions. The dedicated endpoint is
// tried first; when it fails, the last 30 days are scanned for transactions
// whose status or message indicates fraud.
func (s *TransactionService) Fraudulent(ctx context.Context) ([]model.Transaction, error) {
	records, err := s.processor.Fraudulent(ctx)
	if err == nil {
		txns := make([]model.Transaction, len(records))
		for i, rec := range records {
			txns[i] = normalizeRecord(rec)
		}
		return txns, nil
	}

	log.Warn().Err(err).Msg("fraud endpoint unavailable, scanning recent range instead")

	to := time.Now()
	txns, err := s.QueryRange(ctx, to.AddDate(0, 0, -fraudFallbackDays), to)
	if err != nil {
		return nil, err
	}

	frauds := make([]model.Transaction, 0)
	for _, t := range txns {
		if t.Status == normalize.StatusFraud || strings.Contains(strings.ToLower(t.Message), "fraud") {
			frauds = append(frauds, t)
		}
	}
	return frauds, nil
}

// normalizeRecord maps one raw processor record to the canonical view.
func normalizeRecord(rec map[string]any) model.Transaction {
	code := firstString(rec, "codigoUnicoTransaccion", "codTransaccion")
	id := firstString(rec, "codTransaccion", "codigoUnicoTransaccion")

	rawStatus := firstString(rec, "estado")
	if rawStatus == "" {
		rawStatus = normalize.StatusPending
	}

	rawCreated := normalize.ResolveString(rec, "createdAt")
	rawUpdated := firstString(rec, "fechaActualizacion", "fechaExpiracion")

	card := normalize.ResolveString(rec, "cardNumber")
	brand := normalize.AsString(normalize.Resolve(rec, "brand"))
	if brand == "" {
		brand = normalize.BrandFromNumber(card)
	}

	reference := normalize.ResolveString(rec, "reference")
	if reference == "" {
		reference = "Sin referencia"
	}
	country := normalize.ResolveString(rec, "country")
	if country == "" {
		country = "N/A"
	}

	message := firstString(rec, "mensaje")
	if message == "" {
		message = reference + " - " + normalize.DisplayName(rawStatus)
	}

	createdTime, _ := timeutil.ParseFlexible(rawCreated)

	txn := model.Transaction{
		ID:            id,
		Code:          code,
		Status:        normalize.CanonicalStatus(rawStatus),
		StatusName:    normalize.DisplayName(rawStatus),
		Severity:      normalize.Severity(rawStatus),
		CreatedAt:     timeutil.DisplayString(rawCreated),
		Amount:        normalize.CoerceAmount(normalize.Resolve(rec, "amount")),
		CardNumber:    card,
		MaskedCard:    maskIfPresent(card),
		Brand:         brand,
		Reference:     reference,
		Country:       country,
		Message:       message,
		BankSwift:     defaultString(firstString(rec, "swift_banco"), "N/A"),
		IbanAccount:   defaultString(firstString(rec, "cuenta_iban"), "N/A"),
		CreatedAtTime: createdTime,
	}
	if rawUpdated != "" {
		txn.UpdatedAt = timeutil.DisplayString(rawUpdated)
	}
	return txn
}

func mergeDetail(code string, record map[string]any, events []map[string]any) *model.Transaction {
	var (
		amount     any
		id         string
		rawStatus  string
		rawCreated string
		rawUpdated string
		message    string
		card       string
		brand      string
		reference  string
		country    string
	)

	if record != nil {
		id = firstString(record, "id", "codTransaccion")
		amount = normalize.Resolve(record, "amount")
		card = normalize.ResolveString(record, "cardNumber")
		brand = normalize.AsString(normalize.Resolve(record, "brand"))
		reference = normalize.ResolveString(record, "reference")
		country = normalize.ResolveString(record, "country")
		rawStatus = firstString(record, "estado")
		rawCreated = firstString(record, "fechaCreacion")
		if rawCreated == "" {
			rawCreated = normalize.ResolveString(record, "createdAt")
		}
		rawUpdated = firstString(record, "fechaActualizacion")
		message = firstString(record, "mensaje")
	}

	if len(events) > 0 {
		newest := events[0]
		oldest := events[len(events)-1]

		if rawStatus == "" {
			rawStatus = firstString(newest, "estado")
		}
		if rawCreated == "" {
			rawCreated = firstString(oldest, "fechaCreacion", "fechaEstadoCambio")
			if rawCreated == "" {
				rawCreated = normalize.ResolveString(oldest, "createdAt")
			}
		}
		if rawUpdated == "" {
			rawUpdated = firstString(newest, "fechaEstadoCambio")
		}
		if message == "" {
			message = firstString(newest, "mensaje")
		}
		if id == "" {
			id = firstString(newest, "id")
		}

		for _, ev := range events {
			evMessage := firstString(ev, "mensaje")
			if amount == nil {
				amount = normalize.Resolve(ev, "amount")
			}
			if card == "" {
				card = normalize.ResolveString(ev, "cardNumber")
				if card == "" {
					card = normalize.CardNumberFromText(evMessage)
				}
			}
			if reference == "" {
				reference = normalize.ResolveString(ev, "reference")
				if reference == "" && strings.Contains(strings.ToLower(evMessage), "compra") {
					reference = "Compra en línea"
				}
			}
			if brand == "" {
				brand = normalize.AsString(normalize.Resolve(ev, "brand"))
			}
		}
	}

	if rawStatus == "" {
		rawStatus = normalize.StatusPending
	}
	if brand == "" {
		brand = normalize.BrandFromNumber(card)
	}

	history := make([]model.HistoryEvent, len(events))
	for i, ev := range events {
		history[i] = normalizeEvent(ev)
	}

	createdTime, _ := timeutil.ParseFlexible(rawCreated)

	txn := &model.Transaction{
		ID:            id,
		Code:          code,
		Status:        normalize.CanonicalStatus(rawStatus),
		StatusName:    normalize.DisplayName(rawStatus),
		Severity:      normalize.Severity(rawStatus),
		CreatedAt:     timeutil.DisplayString(rawCreated),
		Amount:        normalize.CoerceAmount(amount),
		CardNumber:    card,
		MaskedCard:    maskIfPresent(card),
		Brand:         brand,
		Reference:     defaultString(reference, "Sin referencia"),
		Country:       defaultString(country, "N/A"),
		Message:       message,
		History:       history,
		CreatedAtTime: createdTime,
	}
	if rawUpdated != "" {
		txn.UpdatedAt = timeutil.DisplayString(rawUpdated)
	}
	return txn
}

func normalizeEvent(ev map[string]any) model.HistoryEvent {
	rawStatus := firstString(ev, "estado")
	rawChanged := firstString(ev, "fechaEstadoCambio", "fechaCreacion")
	changedTime, _ := timeutil.ParseFlexible(rawChanged)

	return model.HistoryEvent{
		ID:                firstString(ev, "id"),
		TransactionCode:   firstString(ev, "codTransaccion"),
		HistoryStatusCode: firstString(ev, "codHistorialEstado"),
		Status:            normalize.CanonicalStatus(rawStatus),
		StatusName:        normalize.DisplayName(rawStatus),
		Severity:          normalize.Severity(rawStatus),
		StatusChangedAt:   timeutil.DisplayString(rawChanged),
		Message:           firstString(ev, "mensaje"),
		ChangedAtTime:     changedTime,
	}
}

func sortEventsNewestFirst(events []map[string]any) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, _ := timeutil.ParseFlexible(firstString(events[i], "fechaEstadoCambio", "fechaCreacion"))
		tj, _ := timeutil.ParseFlexible(firstString(events[j], "fechaEstadoCambio", "fechaCreacion"))
		return ti.After(tj)
	})
}

// firstString returns the first non-empty string value among the given keys.
func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := normalize.AsString(rec[k]); s != "" {
			return s
		}
	}
	return ""
}

func maskIfPresent(card string) string {
	if card == "" {
		return ""
	}
	return normalize.MaskCard(card)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
