package sql

import (
	"context"
	"sync"
	"sync/atomic"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Client holds session user information.
type Client struct {
	// User of the session.
	User string
	// Address of the client.
	Address string
}

// Session holds the session data.
type Session interface {
	// ID returns the unique ID of the connection.
	ID() uint32
	// Client returns the user of the session.
	Client() Client
	// GetLogger returns the logger for this session.
	GetLogger() *logrus.Entry
	// SetLogger sets the logger to use for this session.
	SetLogger(*logrus.Entry)
}

// BaseSession is the basic session type.
type BaseSession struct {
	id     uint32
	client Client

	mu     sync.RWMutex
	logger *logrus.Entry
}

// ID implements the Session interface.
func (s *BaseSession) ID() uint32 { return s.id }

// Client implements the Session interface.
func (s *BaseSession) Client() Client { return s.client }

// GetLogger implements the Session interface.
func (s *BaseSession) GetLogger() *logrus.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return s.logger
}

// SetLogger implements the Session interface.
func (s *BaseSession) SetLogger(logger *logrus.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

var autoSessionIDs uint32

// NewSession creates a new session with data.
func NewSession(user, address string) Session {
	return &BaseSession{
		id: atomic.AddUint32(&autoSessionIDs, 1),
		client: Client{
			User:    user,
			Address: address,
		},
	}
}

// NewBaseSession creates a new empty session.
func NewBaseSession() Session {
	return &BaseSession{id: atomic.AddUint32(&autoSessionIDs, 1)}
}

// Context of the query execution.
type Context struct {
	context.Context
	Session
	tracer opentracing.Tracer
}

// ContextOption is a function to configure the context.
type ContextOption func(*Context)

// WithSession adds the given session to the context.
func WithSession(s Session) ContextOption {
	return func(ctx *Context) {
		ctx.Session = s
	}
}

// WithTracer adds the given tracer to the context.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(ctx *Context) {
		ctx.tracer = t
	}
}

// NewContext creates a new query context. Options can be passed to configure
// the context. If some aspect of the context is not configured, the default
// value will be used.
// By default, the context will have an empty base session and a noop tracer.
func NewContext(
	ctx context.Context,
	opts ...ContextOption,
) *Context {
	c := &Context{ctx, NewBaseSession(), opentracing.NoopTracer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEmptyContext returns a default context with default values.
func NewEmptyContext() *Context { return NewContext(context.TODO()) }

// Span creates a new tracing span with the given context.
// It will return the span and a new context that should be passed to all
// children of this span.
func (c *Context) Span(
	opName string,
	opts ...opentracing.StartSpanOption,
) (opentracing.Span, *Context) {
	parentSpan := opentracing.SpanFromContext(c.Context)
	if parentSpan != nil {
		opts = append(opts, opentracing.ChildOf(parentSpan.Context()))
	}
	span := c.tracer.StartSpan(opName, opts...)
	ctx := opentracing.ContextWithSpan(c.Context, span)

	return span, &Context{ctx, c.Session, c.tracer}
}
