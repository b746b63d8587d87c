// Package aitest provides test doubles for AI-backed components: a
// scripted HTTP server standing in for provider APIs and in-memory
// senders for driving generators without a network.
package aitest
