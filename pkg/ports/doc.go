/*
Package ports defines the driven ports (interfaces) of the matrixdeck core.

These interfaces decouple the presenter and its effects from the terminal, the
clock, the audio device and storage, so the core runs headless in tests.

# Key Interfaces

  - Renderer: the capability the core uses to mutate the visual tree.
  - Scheduler: cancellable timers whose callbacks run on the event loop.
  - CuePlayer: optional audio feedback.
  - DeckLoader: reads a deck from a source path.
  - BookmarkStore: persists the last position shown per deck.
*/
package ports
