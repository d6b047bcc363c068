package recommend

import (
	"math"
	"sort"
	"strings"

	"newsrec/internal/textproc"
)

// maxVocabulary caps the vector space at the most frequent terms, matching
// the usual max_features behavior of TF-IDF vectorizers.
const maxVocabulary = 5000

// tfidfVectors builds a fresh TF-IDF vector space over the given texts and
// returns one vector per text, L2-normalized. The vocabulary is rebuilt on
// every call; nothing is cached across calls. Stop-words are excluded (texts
// are already normalized, so this is a harmless second pass).
func tfidfVectors(texts []string) [][]float64 {
	docs := make([][]string, len(texts))
	for i, text := range texts {
		for _, tok := range strings.Fields(text) {
			if !textproc.IsStopWord(tok) {
				docs[i] = append(docs[i], tok)
			}
		}
	}

	vocab := buildVocabulary(docs, maxVocabulary)

	// Document frequency per term.
	df := make([]int, len(vocab))
	for _, doc := range docs {
		seen := make(map[int]bool, len(doc))
		for _, tok := range doc {
			if idx, ok := vocab[tok]; ok && !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	// Smoothed inverse document frequency: ln((1+n)/(1+df)) + 1.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vec := make([]float64, len(vocab))
		for _, tok := range doc {
			if idx, ok := vocab[tok]; ok {
				vec[idx]++
			}
		}
		for j := range vec {
			vec[j] *= idf[j]
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

// buildVocabulary assigns an index to each term, keeping at most maxTerms of
// the highest total-frequency terms. Ties break alphabetically.
func buildVocabulary(docs [][]string, maxTerms int) map[string]int {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// normalize scales a vector to unit L2 norm in place. Zero vectors are left
// untouched.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// cosineSimilarity returns the cosine of the angle between two vectors, in
// [0, 1] for non-negative weights. Either vector being zero yields 0.
func cosineSimilarity(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
