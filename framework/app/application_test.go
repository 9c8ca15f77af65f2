package app_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/app"
	"github.com/km-arc/simsim/framework/bean"
	"github.com/km-arc/simsim/framework/config"
	"github.com/km-arc/simsim/framework/container"
	"github.com/km-arc/simsim/framework/manifest"
)

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(e string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
}

type ticker struct {
	Config *config.Config `autowired:""`
}

type serviceB struct{}

type serviceA struct {
	B *serviceB `autowired:""`
}

type testProvider struct {
	container.BaseProvider
	journal *journal
	fail    error
	booted  bool
}

func (p *testProvider) Register(c *container.Container) error {
	j := p.journal
	defs := []*bean.Definition{
		bean.MustNew[*serviceB](
			bean.WithName("b"),
			bean.WithPostConstruct("record", func(*serviceB) error { j.add("create b"); return nil }),
			bean.WithPreDestroy("record", func(*serviceB) error { j.add("destroy b"); return nil }),
		),
		bean.MustNew[*serviceA](
			bean.WithName("a"),
			bean.WithPostConstruct("record", func(*serviceA) error { j.add("create a"); return p.fail }),
			bean.WithPreDestroy("record", func(*serviceA) error { j.add("destroy a"); return nil }),
		),
	}
	for _, def := range defs {
		if err := c.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func (p *testProvider) Boot(_ *container.Container) error {
	p.booted = true
	return nil
}

func testConfig(eager bool) *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "test", Env: "testing"},
		Container: config.ContainerConfig{EagerInit: eager},
	}
}

func TestNew_EagerInitAndShutdown(t *testing.T) {
	j := &journal{}
	p := &testProvider{journal: j}

	application, err := app.New(testConfig(true), app.WithLogger(zap.NewNop()), app.WithProviders(p))
	require.NoError(t, err)
	assert.True(t, p.booted)
	assert.Equal(t, []string{"create b", "create a"}, j.entries)

	a, err := app.Get[*serviceA](application)
	require.NoError(t, err)
	b, err := application.Bean("b")
	require.NoError(t, err)
	assert.Same(t, b, a.B)

	require.NoError(t, application.Close())
	assert.Equal(t, []string{"create b", "create a", "destroy a", "destroy b"}, j.entries)
	assert.ErrorIs(t, application.Close(), container.ErrContainerClosed)

	_, err = application.BeanOf(bean.TypeOf[*serviceA]())
	assert.ErrorIs(t, err, container.ErrContainerClosed)
}

func TestNew_LazyStartup(t *testing.T) {
	j := &journal{}
	application, err := app.New(testConfig(false), app.WithLogger(zap.NewNop()), app.WithProviders(&testProvider{journal: j}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	assert.Empty(t, j.entries)

	_, err = application.Bean("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"create b", "create a"}, j.entries)
}

func TestNew_FrameworkBeans(t *testing.T) {
	cfg := testConfig(true)
	logger := zap.NewNop()
	application, err := app.New(cfg, app.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	got, err := app.Get[*config.Config](application)
	require.NoError(t, err)
	assert.Same(t, cfg, got)

	l, err := application.Bean("logger")
	require.NoError(t, err)
	assert.Same(t, logger, l)

	assert.Same(t, cfg, application.Config())
	assert.Same(t, logger, application.Logger())
	assert.NotNil(t, application.Metrics())
	assert.True(t, application.Container().Has("metrics"))
}

func TestNew_EagerInitFailureClosesContainer(t *testing.T) {
	j := &journal{}
	boom := errors.New("boom")

	application, err := app.New(testConfig(true), app.WithLogger(zap.NewNop()), app.WithProviders(&testProvider{journal: j, fail: boom}))
	assert.Nil(t, application)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, container.ErrBeanCreationFailed)

	// b was created before a failed and is destroyed on the way out.
	assert.Equal(t, []string{"create b", "create a", "destroy b"}, j.entries)
}

func TestNew_Manifest(t *testing.T) {
	cfg := testConfig(true)
	cfg.Container.Manifest = "testdata/beans.yaml"

	application, err := app.New(cfg,
		app.WithLogger(zap.NewNop()),
		app.WithCatalog(manifest.Catalog{"ticker": manifest.Of[*ticker]()}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	info, err := application.Container().Inspect("manifestTicker")
	require.NoError(t, err)
	assert.True(t, info.Lazy)
	assert.False(t, info.Instantiated)

	tk, err := app.Get[*ticker](application)
	require.NoError(t, err)
	assert.Same(t, cfg, tk.Config)
}

func TestNew_ManifestWithoutCatalog(t *testing.T) {
	cfg := testConfig(true)
	cfg.Container.Manifest = "testdata/beans.yaml"

	_, err := app.New(cfg, app.WithLogger(zap.NewNop()))
	assert.ErrorIs(t, err, manifest.ErrUnknownComponent)
}

func TestHandler(t *testing.T) {
	application, err := app.New(testConfig(true), app.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	h := application.Handler()

	for path, want := range map[string]int{
		"/health":        http.StatusOK,
		"/beans":         http.StatusOK,
		"/beans/config":  http.StatusOK,
		"/beans/missing": http.StatusNotFound,
		"/metrics":       http.StatusOK,
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
	}

	require.NoError(t, application.Close())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
