package engine

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// QuestsPerPage is the default board page size.
const QuestsPerPage = 8

// Board is the quest list view state: search term, type filter and page.
type Board struct {
	term     string
	typ      QuestType
	page     int
	pageSize int
}

func NewBoard(pageSize int) *Board {
	if pageSize <= 0 {
		pageSize = QuestsPerPage
	}
	return &Board{page: 1, pageSize: pageSize}
}

// BoardPage is one page of filtered quests.
type BoardPage struct {
	Quests     []Quest
	Page       int
	TotalPages int
	Total      int
}

func (b *Board) Search() string  { return b.term }
func (b *Board) Type() QuestType { return b.typ }
func (b *Board) PageSize() int   { return b.pageSize }

// SetSearch changes the search term and goes back to the first page.
func (b *Board) SetSearch(term string) {
	b.term = term
	b.page = 1
}

// SetType changes the type filter ("" for all) and goes back to the first page.
func (b *Board) SetType(t QuestType) {
	b.typ = t
	b.page = 1
}

// CycleType moves the filter to the next type, wrapping through "all".
func (b *Board) CycleType() QuestType {
	order := append([]QuestType{""}, QuestTypes...)
	next := QuestType("")
	for i, t := range order {
		if t == b.typ {
			next = order[(i+1)%len(order)]
			break
		}
	}
	b.SetType(next)
	return next
}

// SetPage moves to page p. Out-of-range pages are clamped by Page.
func (b *Board) SetPage(p int) { b.page = p }
func (b *Board) NextPage()     { b.page++ }
func (b *Board) PrevPage()     { b.page-- }

// Page returns the current page of quests, clamping the page number to
// [1, TotalPages]. TotalPages is at least 1 even when nothing matches.
func (b *Board) Page() BoardPage {
	filtered := Filter(Quests(), b.term, b.typ)
	total := (len(filtered) + b.pageSize - 1) / b.pageSize
	if total < 1 {
		total = 1
	}
	b.page = min(max(b.page, 1), total)

	start := (b.page - 1) * b.pageSize
	end := min(start+b.pageSize, len(filtered))
	return BoardPage{
		Quests:     filtered[start:end],
		Page:       b.page,
		TotalPages: total,
		Total:      len(filtered),
	}
}

// Filter keeps quests whose title contains term (case-insensitive) and
// whose type matches typ. An empty typ matches every type. The term is used
// as typed, surrounding spaces included.
func Filter(quests []Quest, term string, typ QuestType) []Quest {
	term = strings.ToLower(term)
	out := make([]Quest, 0, len(quests))
	for _, q := range quests {
		if typ != "" && q.Type != typ {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(q.Title), term) {
			continue
		}
		out = append(out, q)
	}
	return out
}

const maxSuggestions = 3

// Suggest returns up to three search words from the quest titles that are
// close to term. It is meant for searches that matched nothing.
func Suggest(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	type candidate struct {
		word string
		dist int
	}
	var cands []candidate
	for _, w := range titleWords() {
		d := levenshtein.ComputeDistance(term, w)
		if d == 0 || d > 2 || d >= len(w) {
			continue
		}
		cands = append(cands, candidate{word: w, dist: d})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].word < cands[j].word
	})

	out := make([]string, 0, maxSuggestions)
	for _, c := range cands {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.word)
	}
	return out
}

// titleWords is the distinct, lower-cased, non-numeric vocabulary of the
// quest titles.
func titleWords() []string {
	seen := map[string]bool{}
	var words []string
	for _, q := range questCatalog {
		for _, w := range strings.Fields(strings.ToLower(q.Title)) {
			if seen[w] || isNumber(w) {
				continue
			}
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
