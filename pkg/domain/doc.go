/*
Package domain contains the core models of a matrixdeck presentation.

It defines the deck and its slides, the reveal elements animated by progressive
disclosure, and the read-only snapshot published after every navigation. This
package is kept free of I/O and rendering concerns.

# Key Entities

  - Deck: the ordered, immutable list of slides loaded from a deck file.
  - Slide: a 1-based position, a title and ordered content blocks.
  - RevealElement: a block eligible for progressive disclosure, with its stable index.
  - Snapshot: the derived UI state (counter, control enablement, title effect flag).
*/
package domain
