package natal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mingyue/astro-insights/internal/domain/astro"
	apperrors "github.com/mingyue/astro-insights/pkg/errors"
)

var singapore = Coordinates{Latitude: 1.3521, Longitude: 103.8198}

func newTestService(geocoder Geocoder, repo Repository, store Store) *service {
	return &service{
		cfg:      Config{},
		geocoder: geocoder,
		provider: astro.NewAnalyticProvider(),
		repo:     repo,
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func validRequest() Request {
	return Request{
		Name:       "Amara Lin",
		BirthDate:  "1990-06-15",
		BirthTime:  "14:30",
		BirthPlace: "Singapore",
	}
}

func TestComputeChartSuccess(t *testing.T) {
	geo := &stubGeocoder{coords: singapore}
	repo := newStubRepo()
	store := newStubStore()
	svc := newTestService(geo, repo, store)

	chart, err := svc.ComputeChart(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, "Amara Lin", chart.Name)
	require.Equal(t, "1990-06-15", chart.BirthDate)
	require.Equal(t, "14:30", chart.BirthTime)
	require.Equal(t, "Singapore", chart.BirthPlace)
	require.Equal(t, singapore.Latitude, chart.Latitude)
	require.Equal(t, singapore.Longitude, chart.Longitude)
	require.NotEmpty(t, chart.ID)
	require.Greater(t, chart.JulianDay, 2440000.0)

	for _, pos := range []BodyPosition{chart.Sun, chart.Moon, chart.Mercury, chart.Venus, chart.Mars, chart.Ascendant} {
		require.NotEmpty(t, pos.Body)
		require.NotEmpty(t, pos.Sign)
		require.GreaterOrEqual(t, pos.EclipticLongitude, 0.0)
		require.Less(t, pos.EclipticLongitude, 360.0)
		require.GreaterOrEqual(t, pos.DegreeInSign, 0.0)
		require.Less(t, pos.DegreeInSign, 30.0)
	}

	// Mid-June Sun sits in Gemini, which is ruled by Mercury.
	require.Equal(t, "Gemini", chart.Sun.Sign)
	require.Equal(t, "Mercury", chart.RulingBody)
	require.Contains(t, []string{"Fire", "Earth", "Air", "Water"}, chart.DominantElement)
	require.Contains(t, chart.Summary, "Amara Lin")
	require.Contains(t, chart.Summary, "Gemini")
	require.Contains(t, chart.Summary, "Singapore")

	require.Equal(t, 1, geo.calls)
	require.Equal(t, 1, repo.inserts)
	require.Equal(t, 1, store.saves)
}

func TestComputeChartDeterministic(t *testing.T) {
	geo := &stubGeocoder{coords: singapore}
	svc := newTestService(geo, newStubRepo(), noopStore{})

	first, err := svc.ComputeChart(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.ComputeChart(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, firstJSON, secondJSON)
}

func TestComputeChartCacheHitSkipsGeocoding(t *testing.T) {
	geo := &stubGeocoder{coords: singapore}
	svc := newTestService(geo, newStubRepo(), newStubStore())

	first, err := svc.ComputeChart(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.ComputeChart(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, geo.calls)
}

func TestComputeChartLocationNotFound(t *testing.T) {
	geo := &stubGeocoder{err: fmt.Errorf("geocode: %w", ErrPlaceNotFound)}
	repo := newStubRepo()
	svc := newTestService(geo, repo, newStubStore())

	req := validRequest()
	req.BirthPlace = "Atlantis"
	_, err := svc.ComputeChart(context.Background(), req)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "location_not_found"))
	require.Contains(t, err.Error(), "Atlantis")
	require.Equal(t, "Atlantis", geo.lastPlace)
	require.Zero(t, repo.inserts)
}

func TestComputeChartGeocodingUnavailable(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("connection refused")}
	svc := newTestService(geo, newStubRepo(), newStubStore())

	_, err := svc.ComputeChart(context.Background(), validRequest())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "geocoding_unavailable"))
}

func TestComputeChartInvalidDateFailsBeforeGeocoding(t *testing.T) {
	geo := &stubGeocoder{coords: singapore}
	svc := newTestService(geo, newStubRepo(), newStubStore())

	for _, date := range []string{"", "15/06/1990", "1990-6-15", "1990-02-30", "not a date"} {
		req := validRequest()
		req.BirthDate = date
		_, err := svc.ComputeChart(context.Background(), req)
		require.Error(t, err, "date %q", date)
		require.True(t, apperrors.IsCode(err, "invalid_birth_input"), "date %q", date)
	}
	require.Zero(t, geo.calls)
}

func TestComputeChartEmptyNameAndPlace(t *testing.T) {
	svc := newTestService(&stubGeocoder{coords: singapore}, newStubRepo(), newStubStore())

	req := validRequest()
	req.Name = "   "
	_, err := svc.ComputeChart(context.Background(), req)
	require.True(t, apperrors.IsCode(err, "invalid_birth_input"))

	req = validRequest()
	req.BirthPlace = ""
	_, err = svc.ComputeChart(context.Background(), req)
	require.True(t, apperrors.IsCode(err, "invalid_birth_input"))
}

func TestComputeChartClampsOutOfRangeTimeToNoon(t *testing.T) {
	geo := &stubGeocoder{coords: singapore}
	svc := newTestService(geo, newStubRepo(), noopStore{})

	atNoon := validRequest()
	atNoon.BirthTime = "12:00"
	want, err := svc.ComputeChart(context.Background(), atNoon)
	require.NoError(t, err)

	for _, clock := range []string{"25:99", "24:00", "07:75", "-1:30", ""} {
		req := validRequest()
		req.BirthTime = clock
		got, err := svc.ComputeChart(context.Background(), req)
		require.NoError(t, err, "time %q", clock)
		require.Equal(t, want, got, "time %q", clock)
	}
}

func TestComputeChartRejectsMalformedTimeShape(t *testing.T) {
	svc := newTestService(&stubGeocoder{coords: singapore}, newStubRepo(), newStubStore())

	for _, clock := range []string{"noonish", "1430", "14:30:00", "aa:bb"} {
		req := validRequest()
		req.BirthTime = clock
		_, err := svc.ComputeChart(context.Background(), req)
		require.Error(t, err, "time %q", clock)
		require.True(t, apperrors.IsCode(err, "invalid_birth_input"), "time %q", clock)
	}
}

func TestComputeChartEssentialBodyGuard(t *testing.T) {
	svc := newTestService(&stubGeocoder{coords: singapore}, newStubRepo(), newStubStore())
	svc.provider = nanAscendantProvider{inner: astro.NewAnalyticProvider()}

	_, err := svc.ComputeChart(context.Background(), validRequest())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "essential_body_missing"))
}

func TestGetChartRoundTrip(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(&stubGeocoder{coords: singapore}, repo, newStubStore())

	chart, err := svc.ComputeChart(context.Background(), validRequest())
	require.NoError(t, err)

	got, found, err := svc.GetChart(context.Background(), chart.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, chart, got)

	_, found, err = svc.GetChart(context.Background(), "missing-id")
	require.NoError(t, err)
	require.False(t, found)
}

func TestZodiacReference(t *testing.T) {
	svc := newTestService(&stubGeocoder{coords: singapore}, newStubRepo(), newStubStore())

	ref := svc.ZodiacReference()
	require.Len(t, ref, 12)
	require.Equal(t, SignInfo{Sign: "Aries", Element: "Fire", Ruler: "Mars"}, ref[0])
	require.Equal(t, SignInfo{Sign: "Pisces", Element: "Water", Ruler: "Neptune"}, ref[11])
}

type stubGeocoder struct {
	coords    Coordinates
	err       error
	calls     int
	lastPlace string
}

func (s *stubGeocoder) Geocode(_ context.Context, place string) (Coordinates, error) {
	s.calls++
	s.lastPlace = place
	if s.err != nil {
		return Coordinates{}, s.err
	}
	return s.coords, nil
}

type stubRepo struct {
	records map[string]ChartRecord
	inserts int
}

func newStubRepo() *stubRepo {
	return &stubRepo{records: make(map[string]ChartRecord)}
}

func (r *stubRepo) Insert(_ context.Context, record ChartRecord) error {
	r.inserts++
	r.records[record.ID] = record
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (ChartRecord, bool, error) {
	record, ok := r.records[id]
	return record, ok, nil
}

type stubStore struct {
	charts map[string]Response
	saves  int
}

func newStubStore() *stubStore {
	return &stubStore{charts: make(map[string]Response)}
}

func (s *stubStore) Get(_ context.Context, key string) (Response, bool, error) {
	chart, ok := s.charts[key]
	return chart, ok, nil
}

func (s *stubStore) Save(_ context.Context, key string, chart Response, _ time.Duration) error {
	s.saves++
	s.charts[key] = chart
	return nil
}

type noopStore struct{}

func (noopStore) Get(context.Context, string) (Response, bool, error) {
	return Response{}, false, nil
}

func (noopStore) Save(context.Context, string, Response, time.Duration) error {
	return nil
}

type nanAscendantProvider struct {
	inner astro.PositionProvider
}

func (p nanAscendantProvider) Longitude(body astro.Body, jd float64) (float64, error) {
	return p.inner.Longitude(body, jd)
}

func (p nanAscendantProvider) AscendantLongitude(float64, float64, float64) float64 {
	return math.NaN()
}
