// Package service provides the business logic layer (use cases): deal
// reconciliation, cost breakdowns, countdowns, comparables, and the offer
// letter pipeline.
package service

import (
	"context"
	"strings"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/port"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var dealTracer = otel.Tracer("service/deal")

// DealService resolves CRM deals into the reconciled projection the landing
// page consumes. Deals are always fetched fresh; the advisor may be
// negotiating while the seller has the page open.
type DealService struct {
	deals  port.DealFetcher
	logger *zap.Logger
}

// NewDealService creates a new deal service.
func NewDealService(deals port.DealFetcher, logger *zap.Logger) *DealService {
	return &DealService{deals: deals, logger: logger}
}

// GetReconciledDeal fetches a deal by HubSpot object id or by deal_uuid
// (exactly one must be set) and runs the country-specific price
// reconciliation over its raw properties.
func (s *DealService) GetReconciledDeal(ctx context.Context, dealID, dealUUID string) (*domain.DealProjection, error) {
	ctx, span := dealTracer.Start(ctx, "DealService.GetReconciledDeal")
	defer span.End()

	var (
		rec *domain.DealRecord
		err error
	)
	switch {
	case dealID != "":
		rec, err = s.deals.DealByID(ctx, dealID)
	case dealUUID != "":
		rec, err = s.deals.DealByUUID(ctx, dealUUID)
	default:
		return nil, &domain.ErrValidation{Field: "deal_uuid", Message: "deal_uuid or deal_id required"}
	}
	if err != nil {
		return nil, err
	}

	country := pricing.CountryForPipeline(rec.Property("pipeline"))
	span.SetAttributes(
		attribute.String("deal.id", rec.ID),
		attribute.String("deal.country", string(country)),
	)

	proj := s.project(rec, country)

	s.logger.Debug("deal reconciled",
		zap.String("deal_id", rec.ID),
		zap.String("country", string(country)),
		zap.Bool("negociado", proj.Negociado))

	return proj, nil
}

func (s *DealService) project(rec *domain.DealRecord, country pricing.Country) *domain.DealProjection {
	proj := &domain.DealProjection{
		DealUUID:             rec.Property("deal_uuid"),
		HubspotDealID:        rec.ID,
		Country:              string(country),
		Pipeline:             rec.Property("pipeline"),
		PrecioComite:         pricing.NormalizePtr(rec.Property("precio_comite")),
		PrecioComiteOriginal: pricing.NormalizePtr(rec.Property("precio_comite_original")),
		Nid:                  pricing.NormalizePtr(rec.Property("nid")),
		Direccion:            rec.Property("direccion"),
		AreaConstruida:       rec.Property("area_construida"),
		NumHabitaciones:      rec.Property("num_habitaciones"),
		TipoInmueble:         rec.Property("tipo_inmueble"),
		Whatsapp:             rec.Property("whatsapp_asesor"),
	}

	variantKey := proj.DealUUID
	if variantKey == "" {
		variantKey = rec.ID
	}
	proj.Variant = string(pricing.AssignVariant(variantKey))

	if country == pricing.CountryMexico {
		s.projectMexico(rec, proj)
	} else {
		s.projectColombia(rec, proj)
	}
	return proj
}

func (s *DealService) projectColombia(rec *domain.DealRecord, proj *domain.DealProjection) {
	res := pricing.ReconcileBNPL(pricing.BNPLInput{
		PrecioComite:             pricing.Amount(rec.Property("precio_comite")),
		SubsidioLiderAprobado:    rec.Property("aprobacion_subsidio_lider"),
		SubsidioLider:            pricing.Amount(rec.Property("valor_subsidio_lider")),
		SubsidioDirectorAprobado: rec.Property("aprobacion_subsidio_director"),
		SubsidioDirector:         pricing.Amount(rec.Property("valor_subsidio_director")),
		Base1:                    pricing.Amount(rec.Property("bnpl_1")),
		Base3:                    pricing.Amount(rec.Property("bnpl_3")),
		Base6:                    pricing.Amount(rec.Property("bnpl_6")),
		Base9:                    pricing.Amount(rec.Property("bnpl_9")),
		Comercial1:               pricing.Amount(rec.Property("bnpl_1_comercial")),
		Comercial3:               pricing.Amount(rec.Property("bnpl_3_comercial")),
		Comercial6:               pricing.Amount(rec.Property("bnpl_6_comercial")),
		Comercial9:               pricing.Amount(rec.Property("bnpl_9_comercial")),
	})

	proj.Bnpl1 = pricing.FormatAmount(res.Bnpl1)
	proj.Bnpl3 = pricing.FormatAmount(res.Bnpl3)
	proj.Bnpl6 = pricing.FormatAmount(res.Bnpl6)
	proj.Bnpl9 = pricing.FormatAmount(res.Bnpl9)
	proj.LimiteMaximoBnpl1 = pricing.FormatAmount(res.Limite1)
	proj.LimiteMaximoBnpl3 = pricing.FormatAmount(res.Limite3)
	proj.LimiteMaximoBnpl6 = pricing.FormatAmount(res.Limite6)
	proj.LimiteMaximoBnpl9 = pricing.FormatAmount(res.Limite9)
	proj.Negociado = res.Negociado
	proj.NegocioAplicaBnpl = strings.TrimSpace(strings.ToLower(rec.Property("negocio_aplica_bnpl")))
}

func (s *DealService) projectMexico(rec *domain.DealRecord, proj *domain.DealProjection) {
	res := pricing.FinalizeMexico(pricing.MexicoInput{
		OfertaBase: pricing.Amount(rec.Property("oferta_final_prestamo_mx_calculada")),
		CapAprobado: pricing.Amount(
			rec.Property("final_final_aprobado_bo_prestamo_mx_calculo")),
		Negociado: pricing.Amount(rec.Property("valor_negociado_mx")),
	})

	proj.Bnpl1 = pricing.FormatAmount(res.Precio)
	proj.Bnpl3 = "0"
	proj.Bnpl6 = "0"
	proj.Bnpl9 = "0"
	proj.LimiteMaximoBnpl1 = "0"
	proj.LimiteMaximoBnpl3 = "0"
	proj.LimiteMaximoBnpl6 = "0"
	proj.LimiteMaximoBnpl9 = "0"
	proj.Negociado = res.Negociado
	proj.NegocioAplicaBnpl = "no"
}
