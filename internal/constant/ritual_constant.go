package constant

import "time"

// Ritual composition bounds. A ritual always lands inside [MinRitualSteps,
// MaxRitualSteps] after augmentation and truncation.
const (
	MinRitualSteps = 4
	MaxRitualSteps = 7
)

// Similarity retrieval tuning.
const (
	SimilarSessionTopK = 3
	// Sessions below this rating are not worth retrieving at all.
	RetrievalRatingThreshold = 3
	// Only sessions rated this high contribute augmentation steps.
	AugmentRatingThreshold = 4
)

// Feedback rating bounds (inclusive).
const (
	MinRating = 1
	MaxRating = 5
)

// Active session registry eviction. Sessions abandoned without feedback are
// purged after the TTL; the durable SessionMemory row survives.
const (
	SessionRegistryTTL        = 24 * time.Hour
	SessionRegistryPurgeEvery = 10 * time.Minute
)

// User-facing messages, kept verbatim from the original ritual flow.
const (
	MessageRitualCreated  = "Ritual created successfully"
	MessageRitualComplete = "Ritual completed! How did it go?"
	MessageFeedbackSaved  = "Thank you for your feedback!"
)

// EmbedSessionMemoryTopic is the in-process pub/sub topic for asynchronous
// session memory embedding.
const EmbedSessionMemoryTopic = "EMBED_SESSION_MEMORY"

// Domain event codes published to the NATS bus.
const (
	EventRitualCreated     = "RITUAL_CREATED"
	EventFeedbackCollected = "FEEDBACK_COLLECTED"
)
