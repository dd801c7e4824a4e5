package layout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists every problem found in a layout.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout: %s", strings.Join(e.Problems, "; "))
}

// IsValidationError checks if err carries layout problems.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var emojiName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("emojiname", func(fl validator.FieldLevel) bool {
		return emojiName.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks field constraints, then the cross references between entities:
// overwrite targets, emoji role names, thread placement and the rules/AFK flags.
func Validate(g *Guild) error {
	if g == nil {
		return &ValidationError{Problems: []string{"layout is nil"}}
	}

	var problems []string
	if err := validate.Struct(g); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate layout: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
	}

	roleNames := make(map[string]bool, len(g.Roles))
	for i, r := range g.Roles {
		if r.Name == EveryoneRole {
			problems = append(problems, fmt.Sprintf("roles[%d]: %s is implicit and cannot be declared", i, EveryoneRole))
		}
		if roleNames[r.Name] {
			problems = append(problems, fmt.Sprintf("roles[%d]: duplicate role name %q", i, r.Name))
		}
		roleNames[r.Name] = true
	}

	for i, e := range g.Emojis {
		for _, name := range e.Roles {
			if !roleNames[name] {
				problems = append(problems, fmt.Sprintf("emojis[%d]: role %q is not declared", i, name))
			}
		}
	}

	c := &refChecker{roles: g.Roles, roleNames: roleNames}
	for i, ch := range g.RootChannels {
		c.channel(fmt.Sprintf("rootChannels[%d]", i), ch)
	}
	for i, cat := range g.Categories {
		path := fmt.Sprintf("channels[%d]", i)
		c.overwrites(path, cat.Overwrites)
		for j, ch := range cat.Children {
			c.channel(fmt.Sprintf("%s.children[%d]", path, j), ch)
		}
	}
	problems = append(problems, c.problems...)

	if c.rules > 1 {
		problems = append(problems, "more than one channel sets isRulesChannel")
	}
	if c.afk > 1 {
		problems = append(problems, "more than one channel sets isAFKChannel")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

type refChecker struct {
	roles     []RoleSpec
	roleNames map[string]bool
	rules     int
	afk       int
	problems  []string
}

func (c *refChecker) addf(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

func (c *refChecker) channel(path string, ch ChannelSpec) {
	c.overwrites(path, ch.Overwrites)
	if ch.IsRulesChannel {
		c.rules++
	}
	if ch.IsAFKChannel {
		c.afk++
	}
	if ch.Kind == "" {
		// reported by the struct validator
		return
	}

	traits, err := ch.Kind.Traits()
	if err != nil {
		c.addf("%s: %v", path, err)
		return
	}
	if len(ch.Children) > 0 && traits.Threads == ThreadShapeNone {
		c.addf("%s: %s channels cannot hold threads", path, ch.Kind)
	}
	for i, t := range ch.Children {
		if t.Private && traits.Threads != ThreadShapeMessage {
			c.addf("%s.children[%d]: private threads need a text channel", path, i)
		}
		if t.Private && ch.Kind == KindNews {
			c.addf("%s.children[%d]: news channels cannot hold private threads", path, i)
		}
		if len(t.AppliedTags) > 0 && traits.Threads != ThreadShapeForum {
			c.addf("%s.children[%d]: appliedTags only apply to forum threads", path, i)
		}
	}
}

func (c *refChecker) overwrites(path string, ows []OverwriteSpec) {
	for i, ow := range ows {
		targets := 0
		if ow.Role != "" {
			targets++
			if ow.Role != EveryoneRole && !c.roleNames[ow.Role] {
				c.addf("%s.permissionOverwrites[%d]: role %q is not declared", path, i, ow.Role)
			}
		}
		if ow.RoleIndex != nil {
			targets++
			if *ow.RoleIndex < 0 || *ow.RoleIndex >= len(c.roles) {
				c.addf("%s.permissionOverwrites[%d]: roleIndex %d out of range", path, i, *ow.RoleIndex)
			}
		}
		if ow.Member != "" {
			targets++
		}
		if targets != 1 {
			c.addf("%s.permissionOverwrites[%d]: exactly one of role, roleIndex or member is required", path, i)
		}
	}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Guild.")
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}
