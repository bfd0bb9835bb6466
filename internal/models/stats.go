package models

// QuoteStats summarizes a window of issued quotes.
type QuoteStats struct {
	Quotes       int            `json:"quotes"`
	Sent         int            `json:"sent"`
	Failed       int            `json:"failed"`
	SentTotal    float64        `json:"sent_total"`
	AverageTotal float64        `json:"average_total"`
	ByProduct    map[string]int `json:"by_product"`
	DigitalShare float64        `json:"digital_share"`
}

// SummarizeQuotes aggregates quote records. Totals only count sent quotes.
func SummarizeQuotes(records []*QuoteRecord) QuoteStats {
	st := QuoteStats{ByProduct: make(map[string]int)}
	digital := 0
	for _, r := range records {
		st.Quotes++
		st.ByProduct[r.Product]++
		if r.IsDigitalPrint {
			digital++
		}
		switch r.Status {
		case QuoteStatusSent:
			st.Sent++
			st.SentTotal += r.FinalCost
		case QuoteStatusFailed:
			st.Failed++
		}
	}
	if st.Sent > 0 {
		st.AverageTotal = st.SentTotal / float64(st.Sent)
	}
	if st.Quotes > 0 {
		st.DigitalShare = float64(digital) / float64(st.Quotes)
	}
	return st
}
