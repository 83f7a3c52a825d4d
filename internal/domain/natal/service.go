package natal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mingyue/astro-insights/internal/domain/astro"
	apperrors "github.com/mingyue/astro-insights/pkg/errors"
	"github.com/mingyue/astro-insights/pkg/util"
)

// Service exposes natal chart computation to the transport layer.
type Service interface {
	ComputeChart(ctx context.Context, req Request) (Response, error)
	GetChart(ctx context.Context, id string) (Response, bool, error)
	ZodiacReference() []SignInfo
}

// Geocoder resolves a free-text place name to coordinates. Implementations
// return ErrPlaceNotFound (possibly wrapped) when the place yields zero
// results, and any other error for transport failures.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Coordinates, error)
}

// ErrPlaceNotFound signals that geocoding returned no match.
var ErrPlaceNotFound = errors.New("no matching place")

// Repository persists computed charts.
type Repository interface {
	Insert(ctx context.Context, record ChartRecord) error
	GetByID(ctx context.Context, id string) (ChartRecord, bool, error)
}

// Store caches computed charts keyed by a digest of the birth input.
type Store interface {
	Get(ctx context.Context, key string) (Response, bool, error)
	Save(ctx context.Context, key string, chart Response, ttl time.Duration) error
}

// chartNamespace seeds deterministic chart IDs: the same birth input always
// maps to the same UUID.
var chartNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

type service struct {
	cfg      Config
	geocoder Geocoder
	provider astro.PositionProvider
	repo     Repository
	store    Store
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the chart domain.
func NewService(cfg Config, geocoder Geocoder, provider astro.PositionProvider, repo Repository, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		provider: provider,
		repo:     repo,
		store:    store,
		logger:   logger.With("component", "natal.service"),
		now:      util.NowUTC,
	}
}

func (s *service) ComputeChart(ctx context.Context, req Request) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, apperrors.Wrap("invalid_birth_input", "name cannot be empty", nil)
	}
	place := strings.TrimSpace(req.BirthPlace)
	if place == "" {
		return Response{}, apperrors.Wrap("invalid_birth_input", "birth place cannot be empty", nil)
	}
	year, month, day, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_birth_input", "birth date must be formatted as YYYY-MM-DD", err)
	}
	hour, minute, err := parseBirthTime(req.BirthTime)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_birth_input", "birth time must be formatted as HH:MM", err)
	}

	birthDate := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	birthTime := fmt.Sprintf("%02d:%02d", hour, minute)
	key := chartKey(name, birthDate, birthTime, place)

	if cached, found, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("chart cache read failed", "error", err)
	} else if found {
		return cached, nil
	}

	coords, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			return Response{}, apperrors.Wrap("location_not_found", fmt.Sprintf("no location found for %q", place), err)
		}
		return Response{}, apperrors.Wrap("geocoding_unavailable", "geocoding request failed", err)
	}

	utc := astro.ToUTC(year, month, day, hour, minute, coords.Longitude)
	jd := astro.JulianDay(utc.Year, utc.Month, utc.Day, utc.Hour)

	longitudes := make(map[astro.Body]float64, len(astro.Planets)+1)
	for _, body := range astro.Planets {
		lon, err := s.provider.Longitude(body, jd)
		if err != nil {
			return Response{}, apperrors.Wrap("essential_body_missing", fmt.Sprintf("%s position unavailable", body), err)
		}
		longitudes[body] = lon
	}
	longitudes[astro.Ascendant] = s.provider.AscendantLongitude(jd, coords.Latitude, coords.Longitude)

	for _, body := range []astro.Body{astro.Sun, astro.Moon, astro.Ascendant} {
		if lon := longitudes[body]; math.IsNaN(lon) || math.IsInf(lon, 0) {
			return Response{}, apperrors.Wrap("essential_body_missing", fmt.Sprintf("%s longitude is not finite", body), nil)
		}
	}

	positions := make(map[astro.Body]BodyPosition, len(longitudes))
	signs := make([]astro.Sign, 0, len(longitudes))
	for _, body := range append(append([]astro.Body{}, astro.Planets...), astro.Ascendant) {
		pos := decompose(body, longitudes[body])
		positions[body] = pos
		signs = append(signs, astro.SignOf(longitudes[body]))
	}

	sunSign := astro.SignOf(longitudes[astro.Sun])
	dominant := astro.DominantElement(signs)

	chart := Response{
		ID:              uuid.NewSHA1(chartNamespace, []byte(key)).String(),
		Name:            name,
		BirthDate:       birthDate,
		BirthTime:       birthTime,
		BirthPlace:      place,
		Latitude:        coords.Latitude,
		Longitude:       coords.Longitude,
		JulianDay:       jd,
		Sun:             positions[astro.Sun],
		Moon:            positions[astro.Moon],
		Mercury:         positions[astro.Mercury],
		Venus:           positions[astro.Venus],
		Mars:            positions[astro.Mars],
		Ascendant:       positions[astro.Ascendant],
		DominantElement: string(dominant),
		RulingBody:      sunSign.Ruler(),
		Summary: fmt.Sprintf(
			"%s was born on %s in %s with the Sun in %s, the Moon in %s, and %s rising. The chart leans %s and is ruled by %s.",
			name, birthDate, place,
			positions[astro.Sun].Sign, positions[astro.Moon].Sign, positions[astro.Ascendant].Sign,
			dominant, sunSign.Ruler(),
		),
	}

	record := ChartRecord{
		ID:         chart.ID,
		Name:       name,
		BirthDate:  birthDate,
		BirthTime:  birthTime,
		BirthPlace: place,
		Latitude:   coords.Latitude,
		Longitude:  coords.Longitude,
		Chart:      chart,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		s.logger.Error("chart persistence failed", "chart_id", chart.ID, "error", err)
	}
	if err := s.store.Save(ctx, key, chart, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("chart cache write failed", "error", err)
	}

	return chart, nil
}

func (s *service) GetChart(ctx context.Context, id string) (Response, bool, error) {
	record, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Response{}, false, apperrors.Wrap("chart_lookup_failed", "failed to load chart", err)
	}
	if !found {
		return Response{}, false, nil
	}
	return record.Chart, true, nil
}

func (s *service) ZodiacReference() []SignInfo {
	signs := astro.Signs()
	out := make([]SignInfo, 0, len(signs))
	for _, sign := range signs {
		out = append(out, SignInfo{
			Sign:    sign.String(),
			Element: string(sign.Element()),
			Ruler:   sign.Ruler(),
		})
	}
	return out
}

func decompose(body astro.Body, longitude float64) BodyPosition {
	return BodyPosition{
		Body:              string(body),
		EclipticLongitude: astro.Normalize(longitude),
		Sign:              astro.SignOf(longitude).String(),
		DegreeInSign:      astro.DegreeInSign(longitude),
	}
}

func parseBirthDate(input string) (year, month, day int, err error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(input))
	if err != nil {
		return 0, 0, 0, err
	}
	return parsed.Year(), int(parsed.Month()), parsed.Day(), nil
}

// parseBirthTime accepts HH:MM clock time. A missing time defaults to noon,
// and so do out-of-range hour/minute values: the reference behavior favors
// availability over strictness at the time level. A string that does not
// have the HH:MM shape at all is rejected.
func parseBirthTime(input string) (hour, minute int, err error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 12, 0, nil
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock time %q", trimmed)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock time %q: %w", trimmed, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock time %q: %w", trimmed, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 12, 0, nil
	}
	return hour, minute, nil
}

func chartKey(name, birthDate, birthTime, place string) string {
	digest := sha256.Sum256([]byte(strings.Join([]string{
		name, birthDate, birthTime, strings.ToLower(place),
	}, "|")))
	return hex.EncodeToString(digest[:])
}
