package graphcat

import "go.uber.org/zap"

// loggingCatalog logs every lookup on the wrapped catalog. Enumeration is
// forwarded and not logged.
type loggingCatalog struct {
	inner  Catalog
	logger *zap.Logger
}

// NewLoggingCatalog wraps inner so that each lookup is logged at debug level.
// A nil logger disables logging.
func NewLoggingCatalog(inner Catalog, logger *zap.Logger) Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &loggingCatalog{inner: inner, logger: logger.Named("catalog")}
}

func (c *loggingCatalog) NodeSource(label string) (TableSource, bool) {
	src, ok := c.inner.NodeSource(label)
	if ce := c.logger.Check(zap.DebugLevel, "resolve node source"); ce != nil {
		fields := []zap.Field{zap.String("label", label), zap.Bool("found", ok)}
		if ok {
			fields = append(fields, zap.Int("columns", src.Schema().Len()))
		}

		ce.Write(fields...)
	}

	return src, ok
}

func (c *loggingCatalog) RelationshipSource(relType string) (TableSource, bool) {
	src, ok := c.inner.RelationshipSource(relType)
	if ce := c.logger.Check(zap.DebugLevel, "resolve relationship source"); ce != nil {
		fields := []zap.Field{zap.String("rel_type", relType), zap.Bool("found", ok)}
		if ok {
			fields = append(fields, zap.Int("columns", src.Schema().Len()))
		}

		ce.Write(fields...)
	}

	return src, ok
}

func (c *loggingCatalog) NodeMapping(label string) (NodeMapping, bool) {
	m, ok := c.inner.NodeMapping(label)
	c.logger.Debug("resolve node mapping", zap.String("label", label), zap.Bool("found", ok))

	return m, ok
}

func (c *loggingCatalog) RelationshipMapping(relType string) (RelationshipMapping, bool) {
	m, ok := c.inner.RelationshipMapping(relType)
	c.logger.Debug("resolve relationship mapping", zap.String("rel_type", relType), zap.Bool("found", ok))

	return m, ok
}

// NodeLabels enumerates the wrapped catalog's labels, if it can.
func (c *loggingCatalog) NodeLabels() []string {
	labels, _ := listSources(c.inner)

	return labels
}

// RelationshipTypes enumerates the wrapped catalog's relationship types, if it can.
func (c *loggingCatalog) RelationshipTypes() []string {
	_, relTypes := listSources(c.inner)

	return relTypes
}
