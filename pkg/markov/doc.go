/*
Package markov builds first-order Markov chain models from short text
samples and generates new synthetic sentences from them.

A Model owns a transition table mapping each token to the list of tokens
observed to directly follow it. Repetition in a successor list is the
weighting mechanism: a token recorded N times is N times more likely to
be chosen during generation. Models are trained one sample at a time via
Ingest, produce one sentence per Generate call, and round-trip through
JSON via Export and Restore.

Models are not safe for concurrent use; a caller driving one model from
multiple goroutines must serialize access itself.
*/
package markov
