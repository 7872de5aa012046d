package runtime_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/internal/clock"
	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/runtime"
	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// buildDeck returns n slides, each with a heading and reveals items.
func buildDeck(t *testing.T, n, reveals int) *domain.Deck {
	t.Helper()
	slides := make([]*domain.Slide, 0, n)
	for i := 1; i <= n; i++ {
		blocks := []*domain.Block{{Kind: domain.BlockHeading, Level: 1, Text: fmt.Sprintf("Slide %d", i)}}
		for j := 0; j < reveals; j++ {
			blocks = append(blocks, &domain.Block{Kind: domain.BlockItem, Text: fmt.Sprintf("point %d.%d", i, j)})
		}
		slides = append(slides, domain.NewSlide(fmt.Sprintf("Slide %d", i), blocks))
	}
	deck, err := domain.NewDeck(domain.Meta{Title: "test"}, slides)
	require.NoError(t, err)
	return deck
}

type cueRecorder struct {
	cues []ports.Cue
}

func (c *cueRecorder) Play(cue ports.Cue) {
	c.cues = append(c.cues, cue)
}

type fixture struct {
	deck      *domain.Deck
	scene     *scene.Scene
	clock     *clock.Manual
	title     *runtime.TitleEffect
	presenter *runtime.Presenter
	cues      *cueRecorder
}

func newFixture(t *testing.T, n int, opts ...runtime.Option) *fixture {
	t.Helper()
	f := &fixture{
		deck:  buildDeck(t, n, 3),
		scene: scene.New(),
		clock: clock.NewManual(epoch),
		cues:  &cueRecorder{},
	}
	scene.Mount(f.scene, f.deck, scene.FullChrome())

	container, ok := f.scene.Lookup(scene.NameRain)
	require.True(t, ok)
	cfg := effects.DefaultRainConfig()
	cfg.ColumnWidth = 20
	rain := effects.NewRain(f.scene, f.clock, rand.New(rand.NewPCG(7, 7)), container, cfg)
	rain.Rebuild(1000)
	f.title = runtime.NewTitleEffect(f.scene, rain, container, 0)

	base := []runtime.Option{
		runtime.WithTitleEffect(f.title),
		runtime.WithCuePlayer(f.cues),
	}
	p, err := runtime.NewPresenter(f.deck, f.scene, f.clock, append(base, opts...)...)
	require.NoError(t, err)
	f.presenter = p
	f.presenter.Start()
	return f
}

func (f *fixture) node(t *testing.T, name string) *scene.Node {
	t.Helper()
	id, ok := f.scene.Lookup(name)
	require.True(t, ok, "node %s", name)
	n, ok := f.scene.Get(id)
	require.True(t, ok)
	return n
}

func (f *fixture) activeSlides() []int {
	var active []int
	for _, s := range f.deck.Slides {
		id, ok := f.scene.Lookup(scene.SlideName(s.Position))
		if !ok {
			continue
		}
		if n, _ := f.scene.Get(id); n.Active {
			active = append(active, s.Position)
		}
	}
	return active
}
