package service

import (
	"context"
	"fmt"
)

// FolderResolver maps (content type, contributor, course, chapter) to the
// store folder holding that content, creating the path on first use:
// <root>/<type>/<contributor>_<course>_<chapterNumber>.
type FolderResolver struct {
	store ObjectStore
	root  string
}

func NewFolderResolver(store ObjectStore, root string) *FolderResolver {
	return &FolderResolver{store: store, root: root}
}

func (r *FolderResolver) Resolve(ctx context.Context, contentType string, contributorID, courseID uint, chapterNumber int) (string, error) {
	rootID, err := r.store.EnsureFolder(ctx, r.root, "")
	if err != nil {
		return "", fmt.Errorf("resolve root folder: %w", err)
	}
	typeRootID, err := r.store.EnsureFolder(ctx, contentType, rootID)
	if err != nil {
		return "", fmt.Errorf("resolve %s folder: %w", contentType, err)
	}
	name := fmt.Sprintf("%d_%d_%d", contributorID, courseID, chapterNumber)
	folderID, err := r.store.EnsureFolder(ctx, name, typeRootID)
	if err != nil {
		return "", fmt.Errorf("resolve contributor folder: %w", err)
	}
	return folderID, nil
}

func (r *FolderResolver) ResolveAll(ctx context.Context, contentTypes []string, contributorID, courseID uint, chapterNumber int) (map[string]string, error) {
	folders := make(map[string]string, len(contentTypes))
	for _, contentType := range contentTypes {
		id, err := r.Resolve(ctx, contentType, contributorID, courseID, chapterNumber)
		if err != nil {
			return nil, err
		}
		folders[contentType] = id
	}
	return folders, nil
}
