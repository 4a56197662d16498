package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/go-drift/vdom/cmd/vdom/internal/config"
	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
	"github.com/go-drift/vdom/pkg/host/htmlhost"
	"github.com/go-drift/vdom/pkg/markup"
)

// environment is the resolved config plus the logger built from it.
type environment struct {
	cfg    *config.Resolved
	logger zerolog.Logger
}

func loadEnvironment() (*environment, error) {
	dir := projectDir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}

	logger := newLogger(stderr, cfg.LogLevel)
	errors.SetHandler(&errors.LogHandler{Logger: &logger, Verbose: cfg.Verbose})
	if cfg.Source != "" {
		logger.Debug().Str("config", cfg.Source).Str("project", cfg.Project).Msg("loaded config")
	}
	return &environment{cfg: cfg, logger: logger}, nil
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "vdom").Logger()
}

// session applies the steps of one document to a fresh host document.
type session struct {
	path     string
	doc      *markup.Document
	trees    []*core.Node
	host     *htmlhost.Document
	recorder *host.Recorder
	renderer *core.Renderer
	root     *html.Node
}

func openSession(env *environment, path, container string) (*session, error) {
	doc, err := markup.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	trees, err := doc.Build(demoRegistry(env.logger))
	if err != nil {
		return nil, err
	}
	if container == "" {
		container = env.cfg.Container
	}

	hostDoc := htmlhost.New()
	recorder := host.NewRecorder(hostDoc, env.logger)
	return &session{
		path:     path,
		doc:      doc,
		trees:    trees,
		host:     hostDoc,
		recorder: recorder,
		renderer: core.NewRenderer(recorder, core.WithLogger(env.logger)),
		root:     hostDoc.NewContainer(container),
	}, nil
}

// apply renders step i and returns the host operations it issued.
func (s *session) apply(i int) ([]host.Op, error) {
	s.recorder.Reset()
	if err := s.renderer.Render(s.trees[i], s.root); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", s.path, s.doc.StepName(i), err)
	}
	return s.recorder.Ops(), nil
}

func (s *session) output(pretty bool) string {
	if pretty {
		return strings.Join(s.host.Outline(s.root), "\n")
	}
	return s.host.InnerHTML(s.root)
}
