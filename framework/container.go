package framework

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// Marker classifies an entry of a container: a test body or one of the four lifecycle
// hooks.
type Marker int

const (
	MarkerTest Marker = iota
	MarkerBeforeEach
	MarkerAfterEach
	MarkerBeforeAll
	MarkerAfterAll
)

func (m Marker) String() string {
	switch m {
	case MarkerTest:
		return "Test"
	case MarkerBeforeEach:
		return "BeforeEach"
	case MarkerAfterEach:
		return "AfterEach"
	case MarkerBeforeAll:
		return "BeforeAll"
	case MarkerAfterAll:
		return "AfterAll"
	default:
		return fmt.Sprintf("Marker(%d)", int(m))
	}
}

// DisabledMarker is attached to a container or a test body that must not run.
type DisabledMarker struct {
	Reason string
}

// Entry is one declared member of a container, in declaration order.
type Entry struct {
	Name     string
	Marker   Marker
	Func     interface{}
	Expected FailureKind
	Timeout  time.Duration
	Disabled *DisabledMarker
}

// Container is a registered group of test bodies and their lifecycle hooks. Build one with
// Define.
type Container struct {
	name      string
	shortName string
	typ       reflect.Type
	construct func() (interface{}, error)
	entries   []Entry
	disabled  *DisabledMarker
}

// Name is the qualified name, "<import path>.<TypeName>".
func (c *Container) Name() string { return c.name }

// ShortName is the type name alone; display names are built from it.
func (c *Container) ShortName() string { return c.shortName }

// Type is the pointer type that per-test hooks and bodies receive.
func (c *Container) Type() reflect.Type { return c.typ }

func (c *Container) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Container) Disabled() (bool, string) {
	if c.disabled == nil {
		return false, ""
	}
	return true, c.disabled.Reason
}

// newInstance creates a fresh container value. Errors and panics from a custom
// constructor are returned as errors.
func (c *Container) newInstance() (instance reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()
	v, err := c.construct()
	if err != nil {
		return reflect.Value{}, err
	}
	instance = reflect.ValueOf(v)
	if !instance.IsValid() || instance.IsNil() {
		return reflect.Value{}, fmt.Errorf("constructor for %s returned nil", c.shortName)
	}
	return instance, nil
}

// TestOption configures one entry of a container, the equivalent of the attributes of an
// annotation.
type TestOption func(*Entry)

// Expected declares that the body passes only if it fails with an error of the given kind.
func Expected(kind FailureKind) TestOption {
	return func(e *Entry) { e.Expected = kind }
}

// Timeout bounds the whole lifecycle of one execution of the body; zero means unbounded.
func Timeout(d time.Duration) TestOption {
	return func(e *Entry) {
		if d < 0 {
			d = 0
		}
		e.Timeout = d
	}
}

// Disabled marks the body as not to be run. The optional reason is reported with the skip.
func Disabled(reason ...string) TestOption {
	return func(e *Entry) { e.Disabled = &DisabledMarker{Reason: strings.Join(reason, " ")} }
}

// Named overrides the entry name derived from the function.
func Named(name string) TestOption {
	return func(e *Entry) { e.Name = name }
}

// ContainerBuilder declares the entries of a container whose instances have type *C.
//
// Per-test hooks and bodies must be one of
//
//	func(*C)
//	func(*C) error
//	func(*C, *framework.T)
//	func(*C, *framework.T) error
//
// and are usually method expressions such as (*CalculatorTest).testAdd. Once-per-container
// hooks must be callable without an instance: func() or func() error.
type ContainerBuilder[C any] struct {
	container   *Container
	constructor func() (*C, error)
	discover    bool
	built       bool
}

// Define starts the declaration of a container for type C.
func Define[C any]() *ContainerBuilder[C] {
	elem := reflect.TypeOf((*C)(nil)).Elem()
	shortName := elem.Name()
	if shortName == "" {
		shortName = elem.String()
	}
	name := shortName
	if elem.PkgPath() != "" {
		name = elem.PkgPath() + "." + shortName
	}
	return &ContainerBuilder[C]{
		container: &Container{
			name:      name,
			shortName: shortName,
			typ:       reflect.PointerTo(elem),
		},
	}
}

// WithConstructor replaces the default new(C) instantiation.
func (b *ContainerBuilder[C]) WithConstructor(fn func() (*C, error)) *ContainerBuilder[C] {
	b.constructor = fn
	return b
}

// Test declares a test body. Its name is the method or function name; a function literal
// has only a generated name such as "func1", so give it one with Named.
func (b *ContainerBuilder[C]) Test(fn interface{}, opts ...TestOption) *ContainerBuilder[C] {
	return b.add(MarkerTest, fn, opts)
}

func (b *ContainerBuilder[C]) BeforeEach(fn interface{}, opts ...TestOption) *ContainerBuilder[C] {
	return b.add(MarkerBeforeEach, fn, opts)
}

func (b *ContainerBuilder[C]) AfterEach(fn interface{}, opts ...TestOption) *ContainerBuilder[C] {
	return b.add(MarkerAfterEach, fn, opts)
}

func (b *ContainerBuilder[C]) BeforeAll(fn interface{}, opts ...TestOption) *ContainerBuilder[C] {
	return b.add(MarkerBeforeAll, fn, opts)
}

func (b *ContainerBuilder[C]) AfterAll(fn interface{}, opts ...TestOption) *ContainerBuilder[C] {
	return b.add(MarkerAfterAll, fn, opts)
}

// Disabled disables every body of the container. A body's own Disabled reason takes
// precedence over this one.
func (b *ContainerBuilder[C]) Disabled(reason ...string) *ContainerBuilder[C] {
	b.container.disabled = &DisabledMarker{Reason: strings.Join(reason, " ")}
	return b
}

// Discover adds the exported methods of *C by naming convention when the container is
// built: methods starting with "Test" that have a per-test signature become bodies, and
// methods named BeforeEach, AfterEach, BeforeAll or AfterAll become hooks of that kind.
// Methods already declared explicitly are not added twice.
func (b *ContainerBuilder[C]) Discover() *ContainerBuilder[C] {
	b.discover = true
	return b
}

func (b *ContainerBuilder[C]) add(marker Marker, fn interface{}, opts []TestOption) *ContainerBuilder[C] {
	e := Entry{Name: funcName(fn), Marker: marker, Func: fn}
	for _, o := range opts {
		o(&e)
	}
	b.container.entries = append(b.container.entries, e)
	return b
}

// Build finishes the declaration. Calling it more than once returns the same Container.
func (b *ContainerBuilder[C]) Build() *Container {
	if b.built {
		return b.container
	}
	b.built = true
	if b.discover {
		b.discoverMethods()
	}
	constructor := b.constructor
	if constructor == nil {
		constructor = func() (*C, error) { return new(C), nil }
	}
	b.container.construct = func() (interface{}, error) {
		v, err := constructor()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, errors.New("constructor returned a nil instance")
		}
		return v, nil
	}
	return b.container
}

// Register builds the container and adds it to the default registry. It panics if a
// container with the same name was already registered.
func (b *ContainerBuilder[C]) Register() *Container {
	c := b.Build()
	DefaultRegistry().MustRegister(c)
	return c
}

func (b *ContainerBuilder[C]) discoverMethods() {
	declared := make(map[string]bool)
	for _, e := range b.container.entries {
		declared[e.Name] = true
	}
	ptr := b.container.typ
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		if declared[m.Name] {
			continue
		}
		fn := m.Func.Interface()
		switch {
		case m.Name == "BeforeEach":
			b.add(MarkerBeforeEach, fn, []TestOption{Named(m.Name)})
		case m.Name == "AfterEach":
			b.add(MarkerAfterEach, fn, []TestOption{Named(m.Name)})
		case m.Name == "BeforeAll":
			b.add(MarkerBeforeAll, fn, []TestOption{Named(m.Name)})
		case m.Name == "AfterAll":
			b.add(MarkerAfterAll, fn, []TestOption{Named(m.Name)})
		case strings.HasPrefix(m.Name, "Test"):
			if _, ok := classifyInstanceFunc(m.Type, ptr); ok {
				b.add(MarkerTest, fn, []TestOption{Named(m.Name)})
			}
		}
	}
}

// funcName derives an entry name from a function value: the method name for a method
// expression, the function name for a top-level function.
func funcName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	name = strings.TrimSuffix(name, "[...]")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// isGeneratedName reports whether name is one the compiler gave a function literal:
// "func1", or "2" for a literal nested in another.
func isGeneratedName(name string) bool {
	digits := strings.TrimPrefix(name, "func")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
