package recommend

import (
	"sort"

	"newsrec/internal/textproc"
)

// rankBySimilarity scores candidates against a liked title and returns the
// topK most similar, descending, ties kept in input order. Scores and
// processed text are internal to the call and never reach the result.
func rankBySimilarity(likedTitle string, candidates []Article, topK int) []Article {
	if len(candidates) == 0 {
		return nil
	}

	// Corpus: index 0 is the liked title, 1..N the candidates.
	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, textproc.Normalize(likedTitle))
	for i := range candidates {
		candidates[i].processedText = textproc.Normalize(candidates[i].Title)
		texts = append(texts, candidates[i].processedText)
	}

	vectors := tfidfVectors(texts)

	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = cosineSimilarity(vectors[0], vectors[i+1])
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	ranked := make([]Article, 0, topK)
	for _, idx := range order[:topK] {
		a := candidates[idx]
		a.processedText = ""
		ranked = append(ranked, a)
	}
	return ranked
}
