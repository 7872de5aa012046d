/*
Package matrixdeck presents slide decks in the terminal with a little theatre:
a matrix rain behind the title slide, content that builds up line by line,
and keyboard, mouse and remote control of the slide position.

# Concept

A deck is a Markdown (or YAML) file split into slides on "---" lines. The
presenter keeps exactly one slide active and owns the slide position. It only
talks to a retained scene through ports.Renderer and to time through
ports.Scheduler, so the same navigation rules drive the full-screen terminal
front end and the headless Presentation in this package.

# Usage

	deck, err := matrixdeck.Load(ctx, "talk.md")
	if err != nil {
		log.Fatal(err)
	}

	p, err := matrixdeck.New(deck)
	if err != nil {
		log.Fatal(err)
	}
	p.Start()
	p.Elapse(time.Second) // let slide 1 build up
	p.Advance()
	fmt.Println(p.Snapshot().Counter) // "2 / 12"

The matrixdeck command wraps the same pieces in a terminal UI:

	matrixdeck run talk.md --remote :8080

# Layout

  - pkg/domain: decks, slides, navigation events and errors.
  - pkg/ports: the renderer, scheduler, loader, bookmark store and cue player contracts.
  - pkg/adapters: deck parsing, in-memory adapters and the remote control HTTP API.
  - internal/runtime: the presenter, progressive disclosure and the title effect.
  - internal/effects: rain, glitch, typewriter, ripple and hover primitives.
*/
package matrixdeck
