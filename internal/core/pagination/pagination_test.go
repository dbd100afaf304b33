package pagination_test

import (
	"math"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal/core/pagination"
)

var _ = Describe("Page", func() {
	It("disables previous at offset 0", func() {
		p := pagination.Page{Limit: 10, Offset: 0, Total: 25}
		Expect(p.HasPrevious()).To(BeFalse())
		Expect(p.HasNext()).To(BeTrue())
	})

	It("disables next when offset+limit reaches total", func() {
		Expect(pagination.Page{Limit: 10, Offset: 20, Total: 30}.HasNext()).To(BeFalse())
		Expect(pagination.Page{Limit: 10, Offset: 20, Total: 25}.HasNext()).To(BeFalse())
		Expect(pagination.Page{Limit: 10, Offset: 20, Total: 31}.HasNext()).To(BeTrue())
	})

	It("moves between windows without going negative", func() {
		p := pagination.Page{Limit: 10, Offset: 5, Total: 40}
		Expect(p.Next().Offset).To(Equal(15))
		Expect(p.Previous().Offset).To(Equal(0))
		Expect(p.Previous().HasPrevious()).To(BeFalse())
	})

	It("reads limit and offset from the query", func() {
		p := pagination.FromQuery(url.Values{"limit": {"25"}, "offset": {"50"}}, 10)
		Expect(p).To(Equal(pagination.Page{Limit: 25, Offset: 50}))
	})

	It("falls back to defaults for bad input", func() {
		p := pagination.FromQuery(url.Values{"limit": {"-3"}, "offset": {"abc"}}, 10)
		Expect(p).To(Equal(pagination.Page{Limit: 10, Offset: 0}))

		p = pagination.FromQuery(url.Values{"limit": {"1000"}}, 10)
		Expect(p.Limit).To(Equal(pagination.MaxLimit))
	})

	It("clamps a huge offset so next stays disabled", func() {
		p := pagination.FromQuery(url.Values{"offset": {"9223372036854775807"}}, 10)
		Expect(p.Offset).To(Equal(pagination.MaxOffset))

		p = p.WithTotal(3)
		Expect(p.HasNext()).To(BeFalse())
		Expect(p.Next().Offset).To(BeNumerically(">", 0))

		Expect(pagination.Page{Limit: 10, Offset: math.MaxInt, Total: 3}.HasNext()).To(BeFalse())
	})

	It("renders the window for links", func() {
		Expect(pagination.Page{Limit: 10, Offset: 20}.Query()).To(Equal("limit=10&offset=20"))
	})

	It("reports the visible range", func() {
		p := pagination.Page{Limit: 10, Offset: 20, Total: 25}
		Expect(p.From()).To(Equal(21))
		Expect(p.To()).To(Equal(25))
		Expect(pagination.Page{Limit: 10}.From()).To(Equal(0))
	})
})

var _ = Describe("Slice", func() {
	items := []int{1, 2, 3, 4, 5}

	It("returns the window and the total", func() {
		window, p := pagination.Slice(items, pagination.Page{Limit: 2, Offset: 2})
		Expect(window).To(Equal([]int{3, 4}))
		Expect(p.Total).To(Equal(5))
		Expect(p.HasNext()).To(BeTrue())
	})

	It("truncates the last window", func() {
		window, p := pagination.Slice(items, pagination.Page{Limit: 2, Offset: 4})
		Expect(window).To(Equal([]int{5}))
		Expect(p.HasNext()).To(BeFalse())
	})

	It("returns an empty window past the end", func() {
		window, _ := pagination.Slice(items, pagination.Page{Limit: 2, Offset: 10})
		Expect(window).To(BeEmpty())
	})
})
