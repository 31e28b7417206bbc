package binary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/binstall/internal/config"
	"github.com/ZebulonRouseFrantzich/binstall/internal/logging"
	"github.com/ZebulonRouseFrantzich/binstall/internal/platform"
	"github.com/ZebulonRouseFrantzich/binstall/internal/release"
)

// Resolver fetches release metadata. *release.Client implements it.
type Resolver interface {
	Resolve(ctx context.Context, repo, version string) (*release.Metadata, error)
}

// Manager orchestrates release resolution, download, verification,
// extraction and installation.
type Manager struct {
	resolver   Resolver
	downloader *Downloader
	verifier   *Verifier
	extractor  *Extractor
	installer  *Installer
	logger     logging.Logger
}

// Config holds configuration for the binary manager
type Config struct {
	// UserAgent is sent with every request
	UserAgent string
	// Progress receives the download progress bar (usually stderr)
	Progress io.Writer
	Logger   logging.Logger
	// Resolver overrides the release client built from the options (tests).
	Resolver Resolver
}

// NewManager creates a new binary manager for opts.
func NewManager(opts config.Options, cfg Config) (*Manager, error) {
	if opts.Repo == "" {
		return nil, fmt.Errorf("repository is required")
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("binary name is required")
	}

	logger := logging.OrNoop(cfg.Logger)

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = release.NewClient(release.ClientConfig{
			APIBase:   opts.APIBase,
			UserAgent: cfg.UserAgent,
			Token:     opts.Token,
			Logger:    logger,
		})
	}

	return &Manager{
		resolver: resolver,
		downloader: NewDownloader(DownloaderConfig{
			UserAgent: cfg.UserAgent,
			Token:     opts.Token,
			Progress:  cfg.Progress,
			Logger:    logger,
		}),
		verifier:  NewVerifier(),
		extractor: NewExtractor(),
		installer: NewInstaller(logger),
		logger:    logger,
	}, nil
}

// Install runs the pipeline for opts on the given platform. The install is
// complete once the executable has been moved into place; the PATH check
// and smoke test that follow only log.
func (m *Manager) Install(ctx context.Context, opts config.Options, info *platform.Info) (*Result, error) {
	if info == nil {
		return nil, fmt.Errorf("platform info is required")
	}

	ws, err := NewWorkspace("binstall")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			m.logger.Warn("workspace not removed", "dir", ws.Dir, "err", err)
		}
	}()
	m.logger.Debug("workspace created", "dir", ws.Dir, "run", ws.ID)

	wanted := "latest"
	if !opts.Latest() {
		wanted = opts.Version
	}
	m.logger.Info(fmt.Sprintf("resolving %s release of %s for %s", wanted, opts.Repo, info))

	meta, err := m.resolver.Resolve(ctx, opts.Repo, opts.Version)
	if err != nil {
		return nil, fmt.Errorf("resolve release: %w", err)
	}

	sel, err := release.SelectAsset(meta, opts.Name, info.OS, info.Arch)
	if err != nil {
		return nil, err
	}
	m.logger.Info(fmt.Sprintf("selected %s from release %s", sel.AssetName, meta.TagName), "pattern", sel.Pattern)

	result := &Result{
		Tag:         meta.TagName,
		AssetURL:    sel.AssetURL,
		ChecksumURL: sel.ChecksumURL,
		Pattern:     sel.Pattern,
	}

	assetPath := ws.Path("asset", sel.AssetName)
	if err := m.downloader.DownloadToFile(ctx, sel.AssetURL, assetPath); err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}

	verification, err := m.verify(ctx, ws, sel, assetPath)
	if err != nil {
		return nil, err
	}
	result.Verified = verification.Method

	extractDir, err := ws.ExtractDir()
	if err != nil {
		return nil, err
	}
	kind := KindOf(sel.AssetName)
	m.logger.Debug("extracting", "kind", kind, "dest", extractDir)
	if err := m.extractor.Extract(assetPath, sel.AssetName, extractDir, opts.Name); err != nil {
		return nil, fmt.Errorf("extract %s: %w", sel.AssetName, err)
	}

	src, err := Locate(extractDir, opts.Name)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("located executable", "path", src)

	dest, err := m.installer.Install(src, opts.InstallDir, opts.Name, info)
	if err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}
	result.Path = dest
	m.logger.Info(fmt.Sprintf("installed %s %s to %s", opts.Name, meta.TagName, dest))

	m.installer.CheckPath(opts.InstallDir)
	m.installer.SmokeTest(ctx, dest, meta.TagName)

	return result, nil
}

// verify downloads the checksum manifest, if the release has one, and
// checks the asset against it.
func (m *Manager) verify(ctx context.Context, ws *Workspace, sel *release.Selection, assetPath string) (*VerificationResult, error) {
	var manifestPath string
	if sel.ChecksumURL != "" {
		manifestPath = ws.Path("checksums", filepath.Base(release.AssetName(sel.ChecksumURL)))
		if err := m.downloader.DownloadToFile(ctx, sel.ChecksumURL, manifestPath); err != nil {
			return nil, fmt.Errorf("download checksum manifest: %w", err)
		}
	}

	res, err := m.verifier.VerifyFile(assetPath, sel.AssetName, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", sel.AssetName, err)
	}

	switch res.Method {
	case VerificationSHA256:
		m.logger.Info("checksum verified", "sha256", res.Actual)
	default:
		m.logger.Warn(fmt.Sprintf("skipping checksum verification: %s", res.Reason))
	}
	return res, nil
}
