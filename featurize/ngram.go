package featurize

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/validation"
)

// Weighting selects how term counts become feature values.
type Weighting string

const (
	WeightTF      Weighting = "tf"
	WeightTFIDF   Weighting = "tfidf"
	WeightBoolean Weighting = "boolean"
)

// NGramConfig configures an NGram featurizer.
type NGramConfig struct {
	Name        string    `yaml:"name" mapstructure:"name"`
	Columns     []string  `yaml:"columns" mapstructure:"columns" validate:"required,min=1,unique"`
	NgramLength int       `yaml:"ngram_length" mapstructure:"ngram_length" validate:"gte=1,lte=3"`
	MaxFeatures int       `yaml:"max_features" mapstructure:"max_features" validate:"gte=1"`
	Weighting   Weighting `yaml:"weighting" mapstructure:"weighting" validate:"oneof=tf tfidf boolean"`
	KeepCase    bool      `yaml:"keep_case" mapstructure:"keep_case"`
}

// ApplyDefaults fills zero values.
func (c *NGramConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "ngram"
	}
	if c.NgramLength == 0 {
		c.NgramLength = 1
	}
	if c.MaxFeatures == 0 {
		c.MaxFeatures = 10000
	}
	if c.Weighting == "" {
		c.Weighting = WeightTFIDF
	}
}

// NGram is a bag-of-n-grams featurizer over text columns.
// TF and TF-IDF vectors are L2-normalized; boolean vectors are not.
type NGram struct {
	cfg NGramConfig
}

// NewNGram validates cfg and returns the featurizer.
func NewNGram(cfg NGramConfig) (*NGram, error) {
	cfg.ApplyDefaults()
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	return &NGram{cfg: cfg}, nil
}

func (n *NGram) Name() string { return n.cfg.Name }

// Fit builds the vocabulary in one pass over examples.
func (n *NGram) Fit(ctx context.Context, examples *pipeline.Pipeline[stage.Example]) (stage.Fitted, error) {
	docFreq := make(map[string]int)
	docs := 0
	checked := false
	err := pipeline.ForEach(ctx, examples, func(_ context.Context, ex stage.Example) error {
		if !checked {
			if err := n.checkColumns(ex); err != nil {
				return err
			}
			checked = true
		}
		terms, err := n.terms(ex)
		if err != nil {
			return err
		}
		docs++
		for t := range terms {
			docFreq[t]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	vocab := make([]string, 0, len(docFreq))
	for t := range docFreq {
		vocab = append(vocab, t)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if docFreq[vocab[i]] != docFreq[vocab[j]] {
			return docFreq[vocab[i]] > docFreq[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > n.cfg.MaxFeatures {
		vocab = vocab[:n.cfg.MaxFeatures]
	}

	m := &ngramModel{featurizer: n, index: make(map[string]int, len(vocab)), idf: make([]float64, len(vocab))}
	for i, t := range vocab {
		m.index[t] = i
		m.idf[i] = math.Log(float64(1+docs)/float64(1+docFreq[t])) + 1
	}
	m.vocab = vocab
	return m, nil
}

func (n *NGram) checkColumns(ex stage.Example) error {
	for _, c := range n.cfg.Columns {
		t, err := ex.ColumnType(c)
		if err != nil {
			return err
		}
		if t != schema.Text {
			return apperrors.InvalidInput("columns", fmt.Sprintf("stage %q: column %q is %s, want text", n.cfg.Name, c, t))
		}
	}
	return nil
}

// terms counts the n-grams of every configured column.
func (n *NGram) terms(ex stage.Example) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range n.cfg.Columns {
		v, err := ex.Column(c)
		if err != nil {
			return nil, err
		}
		tokens := Tokenize(v.Text(), n.cfg.KeepCase)
		for size := 1; size <= n.cfg.NgramLength; size++ {
			for i := 0; i+size <= len(tokens); i++ {
				counts[strings.Join(tokens[i:i+size], " ")]++
			}
		}
	}
	return counts, nil
}

// Tokenize splits text on runs of characters that are neither letters nor
// digits. Tokens are lower-cased unless keepCase is set.
func Tokenize(text string, keepCase bool) []string {
	if !keepCase {
		text = strings.ToLower(text)
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

type ngramModel struct {
	featurizer *NGram
	vocab      []string
	index      map[string]int
	idf        []float64
}

// Vocabulary returns the learned terms in feature order.
func (m *ngramModel) Vocabulary() []string {
	out := make([]string, len(m.vocab))
	copy(out, m.vocab)
	return out
}

func (m *ngramModel) Transform(_ context.Context, ex stage.Example) (stage.Example, error) {
	counts, err := m.featurizer.terms(ex)
	if err != nil {
		return ex, err
	}
	vec := make([]float64, len(m.vocab))
	for t, c := range counts {
		i, ok := m.index[t]
		if !ok {
			continue
		}
		switch m.featurizer.cfg.Weighting {
		case WeightBoolean:
			vec[i] = 1
		case WeightTF:
			vec[i] = float64(c)
		default:
			vec[i] = float64(c) * m.idf[i]
		}
	}
	if m.featurizer.cfg.Weighting != WeightBoolean {
		normalize(vec)
	}
	return ex.WithFeatures(vec...), nil
}

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
