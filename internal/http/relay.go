package httpx

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/brightmath/campus-api/internal/handshake"
)

// relayPageTmpl is served inside the popup after a successful exchange. The
// session is already persisted by then; the page hands the token back to the
// opener and closes itself after a short delay. When there is no opener
// (direct navigation) it redirects to the app instead.
var relayPageTmpl = template.Must(template.New("relay").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Signing in…</title></head>
<body>
<p>Signing you in…</p>
<script>
  var message = {{.MessageJSON}};
  var targetOrigin = {{.TargetOrigin}};
  if (window.opener) {
    window.opener.postMessage(message, targetOrigin);
    setTimeout(function () { window.close(); }, {{.CloseDelayMS}});
  } else {
    window.location.replace({{.HomePath}});
  }
</script>
</body>
</html>
`))

// failurePageTmpl is served inside the popup when the handshake fails. It
// never closes on its own, so the user can read what went wrong.
var failurePageTmpl = template.Must(template.New("failure").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign-in failed</title></head>
<body>
<h1>Sign-in failed</h1>
<p>{{.Detail}}</p>
<p><button onclick="window.close()">Close window</button></p>
</body>
</html>
`))

type relayPageData struct {
	MessageJSON  template.JS
	TargetOrigin string
	CloseDelayMS int64
	HomePath     string
}

func (h *AuthHandlers) renderRelay(w http.ResponseWriter, r *http.Request, relay *relayPort) {
	raw, err := json.Marshal(relay.msg)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "relay_render_failed", Err: err})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := relayPageTmpl.Execute(w, relayPageData{
		MessageJSON:  template.JS(raw), //nolint:gosec // marshaled from a struct, not user input
		TargetOrigin: relay.target,
		CloseDelayMS: h.closeDelay().Milliseconds(),
		HomePath:     "/dashboard",
	}); err != nil {
		h.logger().WarnContext(r.Context(), "relay page render failed", "error", err)
	}
}

func failureDetail(out handshake.Outcome) string {
	switch out.Reason {
	case handshake.ReasonProviderDenied:
		return "The sign-in was cancelled or denied by the provider."
	case handshake.ReasonMissingCode:
		return "The sign-in response was incomplete. Please try again."
	case handshake.ReasonExchangeFailed:
		return "We could not verify your sign-in. Please try again."
	default:
		return "Something went wrong during sign-in. Please try again."
	}
}

func (h *AuthHandlers) renderFailure(w http.ResponseWriter, r *http.Request, out handshake.Outcome) {
	h.logger().WarnContext(r.Context(), "login handshake failed",
		"reason", string(out.Reason), "error", out.Err)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := failurePageTmpl.Execute(w, map[string]string{
		"Detail": failureDetail(out),
	}); err != nil {
		h.logger().WarnContext(r.Context(), "failure page render failed", "error", err)
	}
}
