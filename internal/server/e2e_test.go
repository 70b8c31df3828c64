//go:build e2e

package server

import (
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/require"
)

func newBrowser(t *testing.T) *rod.Browser {
	t.Helper()

	u, err := launcher.New().Headless(true).Launch()
	require.NoError(t, err, "launch browser")

	browser := rod.New().ControlURL(u).Timeout(30 * time.Second)
	require.NoError(t, browser.Connect())
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

func TestBrowserCreateAddsRow(t *testing.T) {
	srv := newTestApp(t)
	page := newBrowser(t).MustPage(srv.URL + "/static/index.html").MustWaitLoad()

	before := len(page.MustElements("#calc-tbody tr"))

	page.MustElement("#operation").MustSelect("add")
	page.MustElement("#a").MustInput("10")
	page.MustElement("#b").MustInput("5")
	page.MustElement("#submit-btn").MustClick()
	page.MustWaitLoad()
	page.MustElementR("#success-msg", "Calculation created.")

	rows := page.MustElements("#calc-tbody tr")
	require.Len(t, rows, before+1)

	text := rows[len(rows)-1].MustText()
	require.Contains(t, text, "add")
	require.Contains(t, text, "10")
	require.Contains(t, text, "5")
}

func TestBrowserDividesByZero(t *testing.T) {
	srv := newTestApp(t)
	page := newBrowser(t).MustPage(srv.URL).MustWaitLoad()

	page.MustElement("#operation").MustSelect("divide")
	page.MustElement("#a").MustInput("3")
	page.MustElement("#b").MustInput("0")
	page.MustElement("#submit-btn").MustClick()
	page.MustWaitLoad()

	require.Contains(t, page.MustElementR("#error-msg", "divide").MustText(), "Cannot divide by zero.")
	require.Empty(t, page.MustElements("#calc-tbody tr"))
}

func TestBrowserReportNeedsLogin(t *testing.T) {
	srv := newTestApp(t)
	browser := newBrowser(t)

	page := browser.MustPage(srv.URL + "/static/report.html").MustWaitLoad()
	page.MustElement("#show-stats-btn").MustClick()
	page.MustWaitLoad()
	require.Contains(t, page.MustElementR("#stats-total", "logged in").MustText(),
		"You must be logged in to see the report.")

	login := browser.MustPage(srv.URL + "/login").MustWaitLoad()
	login.MustElement("#email").MustInput("ada@example.com")
	login.MustElement("#password").MustInput("password123")
	login.MustElement("#register-btn").MustClick()
	login.MustElementR("#login-success", "Account created")

	login.MustElement("#email").MustSelectAllText().MustInput("ada@example.com")
	login.MustElement("#password").MustInput("password123")
	login.MustElement("#login-btn").MustClick()
	login.MustElement("#show-stats-btn").MustClick()
	login.MustWaitLoad()

	require.Contains(t, login.MustElementR("#stats-total", "Total").MustText(), "Total calculations:")
}
