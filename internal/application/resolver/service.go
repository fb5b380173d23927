package resolver

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/domain/source"
)

// Resolution holds the descriptors of both systems-of-record
type Resolution struct {
	Legacy *connection.Descriptor
	Modern *connection.Descriptor
}

// Service resolves both sources. Both resolvers share one TLS loader.
type Service struct {
	legacy *LegacyResolver
	modern *ModernResolver
	logger *zap.Logger
}

// NewService wires both resolvers around a single TLS loader reading from fs
func NewService(fs afero.Fs, logger *zap.Logger, metrics Recorder) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := NewTLSLoader(fs, metrics)
	return &Service{
		legacy: NewLegacyResolver(loader, logger, metrics),
		modern: NewModernResolver(loader, logger, metrics),
		logger: logger,
	}
}

// Legacy returns the legacy resolver
func (s *Service) Legacy() *LegacyResolver {
	return s.legacy
}

// Modern returns the modern resolver
func (s *Service) Modern() *ModernResolver {
	return s.modern
}

// ResolveAll resolves both sources concurrently. The first failure aborts the
// pair and no partial result is returned.
func (s *Service) ResolveAll(ctx context.Context, legacy source.LegacyDatabase, modern source.ModernDatabaseConfig) (*Resolution, error) {
	var result Resolution
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		desc, err := s.legacy.Resolve(legacy)
		if err != nil {
			return fmt.Errorf("failed to resolve legacy database: %w", err)
		}
		result.Legacy = desc
		return nil
	})
	g.Go(func() error {
		desc, err := s.modern.Resolve(modern)
		if err != nil {
			return fmt.Errorf("failed to resolve modern database: %w", err)
		}
		result.Modern = desc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("resolved database connections",
		zap.String("legacy_driver", string(result.Legacy.Driver)),
		zap.Bool("legacy_tls", result.Legacy.HasTLS()),
		zap.String("modern_driver", string(result.Modern.Driver)),
		zap.Bool("modern_tls", result.Modern.HasTLS()))

	return &result, nil
}
