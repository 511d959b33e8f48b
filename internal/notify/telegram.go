package notify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"

	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/service"
)

const maxBotResults = 5

// TelegramBot exposes the catalog over Telegram: search, popular lists and
// detail lookups, all read through the same cached catalog service as the
// HTTP API.
type TelegramBot struct {
	bot     *tele.Bot
	catalog *service.CatalogService
	log     zerolog.Logger
}

// NewTelegramBot creates a TelegramBot and registers its command handlers.
func NewTelegramBot(token string, catalog *service.CatalogService, log zerolog.Logger) (*TelegramBot, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	t := &TelegramBot{bot: bot, catalog: catalog, log: log}
	t.registerHandlers()
	return t, nil
}

// Start starts long polling (blocking)
func (t *TelegramBot) Start() {
	t.bot.Start()
}

// Stop stops long polling
func (t *TelegramBot) Stop() {
	t.bot.Stop()
}

func (t *TelegramBot) registerHandlers() {
	t.bot.Handle("/start", func(c tele.Context) error {
		return c.Send(
			"🎬 <b>MovieApp</b>\n\n"+
				"/search &lt;title&gt; — search the catalog\n"+
				"/popular — popular right now\n"+
				"/movie &lt;id&gt; — full details",
			tele.ModeHTML)
	})

	t.bot.Handle("/search", func(c tele.Context) error {
		query := strings.TrimSpace(c.Message().Payload)
		page, err := t.catalog.Search(query, 1)
		if err != nil {
			return c.Send(t.errorText(err))
		}
		return c.Send(formatMovieList(fmt.Sprintf("Results for \"%s\"", query), page), tele.ModeHTML)
	})

	t.bot.Handle("/popular", func(c tele.Context) error {
		page, err := t.catalog.GetPopular(1)
		if err != nil {
			return c.Send(t.errorText(err))
		}
		return c.Send(formatMovieList("Popular movies", page), tele.ModeHTML)
	})

	t.bot.Handle("/movie", func(c tele.Context) error {
		movieID, err := strconv.Atoi(strings.TrimSpace(c.Message().Payload))
		if err != nil {
			return c.Send("Usage: /movie <id>")
		}

		movie, err := t.catalog.GetMovieDetails(movieID)
		if err != nil {
			return c.Send(t.errorText(err))
		}
		return c.Send(formatMovieDetails(movie), tele.ModeHTML)
	})
}

// errorText maps service errors onto short user-facing bot replies
func (t *TelegramBot) errorText(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return "Please give me at least 2 characters to search for."
	case errors.Is(err, service.ErrNotFound):
		return "I couldn't find that movie."
	default:
		t.log.Error().Err(err).Msg("telegram query failed")
		return "The catalog is unavailable right now, try again later."
	}
}

// formatMovieList renders the first few entries of a list page
func formatMovieList(title string, page *models.MoviePage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 <b>%s</b>\n\n", title))

	if len(page.Results) == 0 {
		sb.WriteString("Nothing found.")
		return sb.String()
	}

	for i, movie := range page.Results {
		if i >= maxBotResults {
			break
		}
		year := ""
		if len(movie.ReleaseDate) >= 4 {
			year = " (" + movie.ReleaseDate[:4] + ")"
		}
		sb.WriteString(fmt.Sprintf("%d. <b>%s</b>%s — ⭐ %.1f\n   /movie %d\n", i+1, movie.Title, year, movie.VoteAverage, movie.ID))
	}
	return sb.String()
}

// formatMovieDetails renders a detail record
func formatMovieDetails(movie *models.Movie) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 <b>%s</b>\n", movie.Title))
	if movie.Tagline != "" {
		sb.WriteString(fmt.Sprintf("<i>%s</i>\n", movie.Tagline))
	}
	sb.WriteString(fmt.Sprintf("\n⭐ %.1f (%d votes)\n", movie.VoteAverage, movie.VoteCount))
	if movie.ReleaseDate != "" {
		sb.WriteString(fmt.Sprintf("📅 %s\n", movie.ReleaseDate))
	}
	if movie.Runtime > 0 {
		sb.WriteString(fmt.Sprintf("⏱ %d min\n", movie.Runtime))
	}
	if len(movie.Genres) > 0 {
		names := make([]string, 0, len(movie.Genres))
		for _, g := range movie.Genres {
			names = append(names, g.Name)
		}
		sb.WriteString("🏷 " + strings.Join(names, ", ") + "\n")
	}
	if movie.Overview != "" {
		sb.WriteString("\n" + movie.Overview + "\n")
	}
	return sb.String()
}
