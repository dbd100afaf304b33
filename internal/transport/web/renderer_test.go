package web_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/request"
	"github.com/frahmantamala/timeclock/internal/transport/web"
)

type requestsView struct {
	Table      request.TableView
	Types      []string
	LeaveTypes []string
	Records    []timetracking.Record
}

var _ = Describe("Renderer", func() {
	var renderer *web.Renderer

	BeforeEach(func() {
		var err error
		renderer, err = web.NewRenderer(time.UTC)
		Expect(err).NotTo(HaveOccurred())
	})

	render := func(name string, page web.Page) string {
		var buf bytes.Buffer
		Expect(renderer.Render(&buf, name, page)).To(Succeed())
		return buf.String()
	}

	It("parses every page", func() {
		for _, name := range []string{"login", "dashboard", "records", "adjustments", "timeoff", "leavebalances", "profile", "users", "user_new", "user_edit", "error"} {
			Expect(renderer.Has(name)).To(BeTrue(), name)
		}
	})

	It("fails on unknown pages", func() {
		var buf bytes.Buffer
		Expect(renderer.Render(&buf, "missing", web.Page{})).To(HaveOccurred())
	})

	It("renders the login page without navigation and keeps the username", func() {
		html := render("login", web.Page{
			Title:  "Sign in",
			Flash:  web.Failure("Login response did not include an access token"),
			Errors: map[string]string{"password": "password is required"},
			Form:   url.Values{"username": {"ana"}},
		})

		Expect(html).NotTo(ContainSubstring(`action="/logout"`))
		Expect(html).To(ContainSubstring("Login response did not include an access token"))
		Expect(html).To(ContainSubstring(`value="ana"`))
		Expect(html).To(ContainSubstring("password is required"))
	})

	Describe("role-conditioned actions", func() {
		rows := []request.Row{{Kind: request.KindTimeOff, ID: "t-1", Status: "PENDING", Category: "VACATION"}}

		page := func(role user.Role) web.Page {
			table := request.NewTableView(rows, "", pagination.Page{Limit: 10}, "/time-off")
			table.ShowOwner = role == user.RoleHR
			table.CanReview = role == user.RoleHR
			return web.Page{
				Title:  "Time off",
				Viewer: &internal.Principal{UserID: "u-1", Role: role},
				Data:   requestsView{Table: table, LeaveTypes: []string{"VACATION"}},
			}
		}

		It("shows review buttons and the users link to HR", func() {
			html := render("timeoff", page(user.RoleHR))
			Expect(html).To(ContainSubstring(`action="/time-off/t-1/review"`))
			Expect(html).To(ContainSubstring(`href="/users"`))
		})

		It("hides them from employees", func() {
			html := render("timeoff", page(user.RoleEmployee))
			Expect(html).NotTo(ContainSubstring("/review"))
			Expect(html).NotTo(ContainSubstring(`href="/users"`))
			Expect(html).NotTo(ContainSubstring(`name="status" value="APPROVED"`))
			Expect(html).NotTo(ContainSubstring(">Approve</button>"))
		})
	})

	Describe("pager", func() {
		It("disables Previous on the first page and Next on the last", func() {
			rows := make([]request.Row, 3)
			for i := range rows {
				rows[i] = request.Row{ID: string(rune('a' + i)), Status: "PENDING"}
			}
			table := request.NewTableView(rows, "", pagination.Page{Limit: 10}, "/adjustments")

			html := render("adjustments", web.Page{
				Title:  "Adjustments",
				Viewer: &internal.Principal{UserID: "u-1", Role: user.RoleEmployee},
				Data:   requestsView{Table: table},
			})
			Expect(html).To(ContainSubstring(`<button type="button" disabled>Previous</button>`))
			Expect(html).To(ContainSubstring(`<button type="button" disabled>Next</button>`))
		})

		It("links the next window and keeps the filter", func() {
			p := web.NewPager("/users", pagination.Page{Limit: 10, Offset: 0, Total: 25}, "state", "active")
			Expect(p.NextURL()).To(Equal("/users?limit=10&offset=10&state=active"))
			Expect(p.PreviousURL()).To(Equal("/users?limit=10&offset=0&state=active"))
		})

		It("drops empty extra values", func() {
			p := web.NewPager("/time-tracking", pagination.Page{Limit: 5, Offset: 5, Total: 12}, "type", "all", "q", "")
			Expect(p.PreviousURL()).To(Equal("/time-tracking?limit=5&offset=0&type=all"))
		})
	})
})

var _ = Describe("Flash", func() {
	It("survives one redirect and is then cleared", func() {
		rec := httptest.NewRecorder()
		web.SetFlash(rec, web.Success("Saved"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		next := httptest.NewRecorder()
		flash := web.PopFlash(next, req)
		Expect(flash).NotTo(BeNil())
		Expect(flash.Kind).To(Equal(web.FlashSuccess))
		Expect(flash.Message).To(Equal("Saved"))

		cleared := next.Result().Cookies()
		Expect(cleared).To(HaveLen(1))
		Expect(cleared[0].MaxAge).To(BeNumerically("<", 0))
	})

	It("ignores a tampered cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "timeclock_flash", Value: "%%%"})

		Expect(web.PopFlash(httptest.NewRecorder(), req)).To(BeNil())
	})
})
