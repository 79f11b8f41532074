package wire

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/confchat/internal/config"
	"github.com/mithrel/confchat/internal/memo"
	"github.com/mithrel/confchat/pkg/richtext"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg    *viper.Viper
	Log    *log.Logger
	Cache  *memo.Cache
	Parser *richtext.Parser
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	var out io.Writer = io.Discard
	if v.GetBool("log.verbose") {
		out = os.Stderr
	}
	logger := log.New(out, "confchat ", log.LstdFlags)
	flush := v.GetBool("render.flush_unterminated_fence")
	return &App{
		Cfg:    v,
		Log:    logger,
		Cache:  memo.New(v.GetInt("cache.size"), flush),
		Parser: richtext.NewParser(richtext.FlushUnterminated(flush)),
	}, nil
}
