package help

import (
	"net/http"

	"warehouse/frontend/shared/nav"
	"warehouse/pkg/logger"
)

func HelpPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Top:      nav.BuildTopNavData("/help"),
			Sections: sections(),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HelpPage(data).Render(r.Context(), w); err != nil {
			logger.FromContext(r.Context()).Errorw("render help page failed", "err", err)
			http.Error(w, "failed to render help page", http.StatusInternalServerError)
			return
		}
	}
}
