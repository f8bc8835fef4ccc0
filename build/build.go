// Package build sequences the catalog pipeline: scrape and generate the
// catalog, harvest icons, split UI templates, bundle resources and emit
// build metadata. Each stage is skipped when its outputs are present and
// fresh by modification time.
package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/etree"
	"github.com/timarques/eucatalog/fs"
	"go.uber.org/zap"
)

// Stage names, used in StageError and metadata.
const (
	StageCatalog   = "catalog"
	StageIcons     = "icons"
	StageTemplates = "templates"
	StageBundle    = "bundle"
	StageMetadata  = "metadata"
)

// Artifacts, relative to the output directory.
const (
	CatalogFile       = "catalog.go"
	IconsManifest     = "icons.xml"
	TemplatesManifest = "templates.xml"
	ResourcesFile     = "resources.xml"
	BundleFile        = "resources.zip"
	MetadataFile      = "metadata.yaml"
)

// StageError attributes a pipeline failure to the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error, so eucatalog.ErrorCode still reports
// its code.
func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// Options are per-run inputs of a build.
type Options struct {
	Mode             eucatalog.ExecutionMode
	App              eucatalog.AppInfo
	SchemasInstalled bool

	// TemplatesSource is the UI definition split into templates. Empty
	// disables the template stage.
	TemplatesSource string
}

// Builder runs the pipeline against one output directory.
type Builder struct {
	OutputDir string

	Scraper   eucatalog.Scraper
	Harvester eucatalog.IconHarvester
	Generator eucatalog.CatalogGenerator
	Templates eucatalog.TemplateExtractor
	Bundler   eucatalog.Bundler
	Metadata  eucatalog.MetadataWriter

	// Store and Ledger are optional. When set, a regenerated catalog is
	// snapshotted and the build recorded.
	Store  eucatalog.CatalogStore
	Ledger eucatalog.BuildLedger

	// ResourcesTemplate defaults to etree.DefaultResourcesTemplate.
	ResourcesTemplate string

	Logger *zap.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// run carries the state of one Build call.
type run struct {
	*Builder
	opts        Options
	id          string
	cache       *fs.Cache
	writer      *fs.Writer
	regenerated map[string]bool
}

// Build runs every stage in order and returns the metadata it wrote. Any
// stage failure aborts the build with a *StageError; a failed catalog or
// icon stage leaves the output directory untouched.
func (b *Builder) Build(ctx context.Context, opts Options) (*eucatalog.BuildMetadata, error) {
	if b.OutputDir == "" {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "output directory is required")
	}

	r := &run{
		Builder: b,
		opts:    opts,
		id:      b.newID(),
		cache:   fs.NewCache(b.OutputDir),
		writer:  fs.NewWriter(b.OutputDir),
		regenerated: map[string]bool{
			StageCatalog:   false,
			StageIcons:     false,
			StageTemplates: false,
			StageBundle:    false,
		},
	}
	b.logger().Info("build started",
		zap.String("build_id", r.id),
		zap.Stringer("mode", opts.Mode),
		zap.String("output_dir", b.OutputDir),
	)

	if err := r.catalogAndIcons(ctx); err != nil {
		return nil, err
	}
	if err := stageErr(StageTemplates, r.templates()); err != nil {
		return nil, err
	}
	if err := stageErr(StageBundle, r.bundle()); err != nil {
		return nil, err
	}

	meta, err := r.metadata()
	if err != nil {
		return nil, stageErr(StageMetadata, err)
	}
	b.logger().Info("build finished", zap.String("build_id", r.id), zap.Any("regenerated", r.regenerated))
	return meta, nil
}

// Clean removes every artifact so the next build starts from scratch.
func (b *Builder) Clean() error {
	return fs.NewCache(b.OutputDir).Remove(
		CatalogFile, IconsManifest, TemplatesManifest, ResourcesFile, BundleFile, MetadataFile,
		etree.IconsDir, etree.TemplatesDir,
	)
}

// catalogAndIcons runs the catalog stage and the icon stage. A regenerated
// catalog and its icons are staged together and committed with the catalog
// file last, so an existing catalog file implies its icons are in place.
func (r *run) catalogAndIcons(ctx context.Context) error {
	cached, err := r.cache.Exists(CatalogFile)
	if err != nil {
		return stageErr(StageCatalog, err)
	}
	if cached {
		r.skip(StageCatalog, "catalog artifact exists")
		return stageErr(StageIcons, r.iconManifestFromDisk())
	}

	out := filepath.Clean(r.OutputDir)
	stage := fs.NewStage(filepath.Dir(out), filepath.Base(out))
	if err := stage.Begin(); err != nil {
		return stageErr(StageCatalog, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = stage.Abort()
		}
	}()

	res, src, err := r.scrape(ctx)
	if err != nil {
		return stageErr(StageCatalog, err)
	}
	if err := stage.WriteFile(CatalogFile, src); err != nil {
		return stageErr(StageCatalog, err)
	}
	r.regenerated[StageCatalog] = true

	if len(res.Icons) > 0 {
		if err := r.harvest(ctx, stage, res.Icons); err != nil {
			return stageErr(StageIcons, err)
		}
	}

	if err := stage.Commit(CatalogFile); err != nil {
		return stageErr(StageCatalog, err)
	}
	committed = true

	// The snapshot only ever describes a committed catalog.
	if err := r.snapshot(ctx, res.Catalog, src); err != nil {
		return stageErr(StageCatalog, err)
	}
	r.logger().Info("catalog committed",
		zap.Int("categories", len(res.Catalog.Categories)),
		zap.Int("products", len(res.Catalog.Products)),
		zap.Int("icons", len(res.Icons)),
	)

	if len(res.Icons) == 0 {
		return stageErr(StageIcons, r.iconManifestFromDisk())
	}
	return nil
}

func (r *run) scrape(ctx context.Context) (*eucatalog.ScrapeResult, []byte, error) {
	res, err := r.Scraper.Scrape(ctx, r.opts.Mode)
	if err != nil {
		return nil, nil, err
	}
	if res == nil || res.Catalog == nil {
		return nil, nil, eucatalog.Errorf(eucatalog.EDATA, "scraper returned no catalog")
	}
	src, err := r.Generator.Generate(res.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("generate catalog: %w", err)
	}
	return res, src, nil
}

func (r *run) harvest(ctx context.Context, stage *fs.Stage, icons []eucatalog.Icon) error {
	assets, err := r.Harvester.Harvest(ctx, icons, r.opts.Mode)
	if err != nil {
		return err
	}

	stage.Replace(etree.IconsDir)
	for _, a := range assets {
		if err := stage.WriteFile(path.Join(etree.IconsDir, a.Icon.Filename), a.Data); err != nil {
			return err
		}
	}

	// icons are unique by URL, so there is one asset per icon.
	manifest, err := etree.WriteManifest(etree.IconEntries(etree.IconFilenames(icons)))
	if err != nil {
		return err
	}
	if err := stage.WriteFile(IconsManifest, []byte(manifest)); err != nil {
		return err
	}
	r.regenerated[StageIcons] = true
	return nil
}

// iconManifestFromDisk rebuilds a missing icon manifest from the files
// already in the icons directory.
func (r *run) iconManifestFromDisk() error {
	ok, err := r.cache.Exists(IconsManifest)
	if err != nil {
		return err
	}
	if ok {
		r.skip(StageIcons, "no new icon references and manifest exists")
		return nil
	}

	names, err := r.cache.List(etree.IconsDir)
	if err != nil {
		return err
	}
	manifest, err := etree.WriteManifest(etree.IconEntries(names))
	if err != nil {
		return err
	}
	if err := r.writer.WriteFile(IconsManifest, []byte(manifest)); err != nil {
		return err
	}
	r.regenerated[StageIcons] = true
	r.logger().Info("icon manifest rebuilt from disk", zap.Int("icons", len(names)))
	return nil
}

func (r *run) snapshot(ctx context.Context, c *eucatalog.Catalog, src []byte) error {
	if r.Store != nil {
		if err := r.Store.SaveCatalog(ctx, c); err != nil {
			return fmt.Errorf("save catalog snapshot: %w", err)
		}
	}
	if r.Ledger != nil {
		err := r.Ledger.RecordBuild(ctx, &eucatalog.BuildRecord{
			ID:            r.id,
			CreatedAt:     r.now(),
			Mode:          r.opts.Mode,
			Categories:    len(c.Categories),
			Products:      len(c.Products),
			CatalogDigest: fs.Digest(src),
		})
		if err != nil {
			return fmt.Errorf("record build: %w", err)
		}
	}
	return nil
}

func (r *run) templates() error {
	if r.opts.TemplatesSource == "" {
		r.skip(StageTemplates, "no templates source configured")
		return nil
	}

	stale, err := r.cache.IsStale(TemplatesManifest, r.opts.TemplatesSource)
	if err != nil {
		return err
	}
	if !stale {
		r.skip(StageTemplates, "templates manifest is newer than its source")
		return nil
	}

	source, err := os.ReadFile(r.opts.TemplatesSource)
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "read templates source: %v", err)
	}
	templates, err := r.Templates.ExtractTemplates(source)
	if err != nil {
		return err
	}

	if err := r.cache.Remove(etree.TemplatesDir); err != nil {
		return err
	}
	for _, t := range templates {
		if err := r.writer.WriteFile(path.Join(etree.TemplatesDir, t.Filename()), t.Data); err != nil {
			return err
		}
	}
	manifest, err := etree.WriteManifest(etree.TemplateEntries(templates))
	if err != nil {
		return err
	}
	if err := r.writer.WriteFile(TemplatesManifest, []byte(manifest)); err != nil {
		return err
	}

	r.regenerated[StageTemplates] = true
	r.logger().Info("templates extracted", zap.Int("templates", len(templates)))
	return nil
}

func (r *run) bundle() error {
	exists, err := r.cache.Exists(BundleFile)
	if err != nil {
		return err
	}
	if exists && !r.anyRegenerated() {
		r.skip(StageBundle, "no stage regenerated and bundle exists")
		return nil
	}

	icons, err := r.readOptional(IconsManifest)
	if err != nil {
		return err
	}
	templates, err := r.readOptional(TemplatesManifest)
	if err != nil {
		return err
	}
	tmpl := r.ResourcesTemplate
	if tmpl == "" {
		tmpl = etree.DefaultResourcesTemplate
	}
	resources, err := etree.RenderResources(tmpl, r.opts.App.Prefix, string(templates), string(icons))
	if err != nil {
		return err
	}
	if err := r.writer.WriteFile(ResourcesFile, []byte(resources)); err != nil {
		return err
	}

	files := []eucatalog.BundleFile{{Path: ResourcesFile, Data: []byte(resources)}}
	for _, rel := range []string{CatalogFile, IconsManifest, TemplatesManifest} {
		data, err := r.readOptional(rel)
		if err != nil {
			return err
		}
		if data != nil {
			files = append(files, eucatalog.BundleFile{Path: rel, Data: data})
		}
	}
	for _, dir := range []string{etree.IconsDir, etree.TemplatesDir} {
		names, err := r.cache.List(dir)
		if err != nil {
			return err
		}
		for _, name := range names {
			rel := path.Join(dir, name)
			data, err := r.read(rel)
			if err != nil {
				return err
			}
			files = append(files, eucatalog.BundleFile{Path: rel, Data: data})
		}
	}

	var buf bytes.Buffer
	if err := r.Bundler.Bundle(&buf, files); err != nil {
		return err
	}
	if err := r.writer.WriteFile(BundleFile, buf.Bytes()); err != nil {
		return err
	}

	r.regenerated[StageBundle] = true
	r.logger().Info("resources bundled", zap.Int("files", len(files)), zap.Int("bytes", buf.Len()))
	return nil
}

func (r *run) metadata() (*eucatalog.BuildMetadata, error) {
	meta := &eucatalog.BuildMetadata{
		BuildID:          r.id,
		GeneratedAt:      r.now(),
		Mode:             r.opts.Mode.String(),
		App:              r.opts.App,
		SchemasInstalled: r.opts.SchemasInstalled,
		Artifacts:        make(map[string]string),
		Digests:          make(map[string]string),
		Regenerated:      r.regenerated,
	}

	artifacts := map[string]string{
		StageCatalog:   CatalogFile,
		StageIcons:     IconsManifest,
		StageTemplates: TemplatesManifest,
		"resources":    ResourcesFile,
		StageBundle:    BundleFile,
	}
	for name, rel := range artifacts {
		ok, err := r.cache.Exists(rel)
		if err != nil {
			return nil, err
		}
		if ok {
			meta.Artifacts[name] = rel
		}
	}
	for _, name := range []string{StageCatalog, StageBundle} {
		rel, ok := meta.Artifacts[name]
		if !ok {
			continue
		}
		digest, err := fs.DigestFile(filepath.Join(r.OutputDir, rel))
		if err != nil {
			return nil, err
		}
		meta.Digests[name] = digest
	}

	var buf bytes.Buffer
	if err := r.Metadata.WriteMetadata(&buf, meta); err != nil {
		return nil, err
	}
	if err := r.writer.WriteFile(MetadataFile, buf.Bytes()); err != nil {
		return nil, err
	}
	return meta, nil
}

func (r *run) anyRegenerated() bool {
	for _, ok := range r.regenerated {
		if ok {
			return true
		}
	}
	return false
}

func (r *run) skip(stage, reason string) {
	r.logger().Info("stage skipped", zap.String("stage", stage), zap.String("reason", reason))
}

func (r *run) read(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.OutputDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "read %s: %v", rel, err)
	}
	return data, nil
}

// readOptional returns nil for a missing file.
func (r *run) readOptional(rel string) ([]byte, error) {
	ok, err := r.cache.Exists(rel)
	if err != nil || !ok {
		return nil, err
	}
	return r.read(rel)
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now().UTC()
	}
	return b.Now()
}

func (b *Builder) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}
