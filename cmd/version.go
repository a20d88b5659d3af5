package cmd

import (
	"os"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func getVersion() string {
	// Try to get version from build
	if buildInfo, ok := os.LookupEnv("VERSION"); ok {
		return buildInfo
	}

	// Try to get from git
	if dir, err := os.Getwd(); err == nil {
		if rev, err := gitRevision(dir); err == nil {
			return rev
		}
	}

	return version
}

// gitRevision describes HEAD of the repository containing dir: a tag pointing
// at HEAD if there is one (the highest by name), else the short commit hash.
func gitRevision(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", err
	}

	tags, err := headTags(repo, head.Hash())
	if err != nil {
		return "", err
	}
	if len(tags) > 0 {
		return tags[len(tags)-1], nil
	}

	return head.Hash().String()[:7], nil
}

// headTags returns the sorted names of lightweight and annotated tags whose
// commit is head.
func headTags(repo *git.Repository, head plumbing.Hash) ([]string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, err
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := repo.TagObject(target); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return nil
			}
			target = commit.Hash
		}
		if target == head {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
