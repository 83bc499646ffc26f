// Package assets provides the WordprocessingML skeleton used for new documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in parts)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// Each skeleton part is a text/template rendered with SkeletonData (fonts,
// page geometry, document properties). Overriding one part, for example
// styles, only requires placing that file in the custom directory.
//
// # Directory Structure
//
//	{basePath}/
//	└── parts/
//	    ├── content-types.xml   # [Content_Types].xml
//	    ├── package-rels.xml    # _rels/.rels
//	    ├── document.xml        # word/document.xml (empty body + sectPr)
//	    ├── document-rels.xml   # word/_rels/document.xml.rels
//	    ├── styles.xml          # word/styles.xml
//	    ├── settings.xml        # word/settings.xml
//	    ├── core.xml            # docProps/core.xml
//	    └── app.xml             # docProps/app.xml
//
// # Security
//
// Part names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
