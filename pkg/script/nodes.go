package script

import (
	"fmt"

	"github.com/dop251/goja"

	"viewkit/pkg/attr"
	"viewkit/pkg/geom"
	"viewkit/pkg/scene"
	"viewkit/pkg/view"
	"viewkit/pkg/widget"
)

// registerScene sets up the global `scene` object.
func (e *Engine) registerScene() {
	obj := e.vm.NewObject()
	obj.Set("find", func(call goja.FunctionCall) goja.Value {
		n, ok := e.scene.Node(call.Argument(0).String())
		if !ok {
			return goja.Null()
		}
		return e.proxy(n)
	})
	obj.Set("root", func(goja.FunctionCall) goja.Value {
		return e.proxy(e.scene.Root)
	})
	obj.Set("ids", func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(e.scene.IDs())
	})
	obj.Set("create", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(e.vm.NewTypeError("scene.create: node type required"))
		}
		n, err := e.scene.Builder().NewNode(call.Argument(0).String(), e.bag(call.Argument(1)))
		if err != nil {
			e.throw(err)
		}
		if id := call.Argument(2); !goja.IsUndefined(id) && !goja.IsNull(id) {
			if err := e.scene.Register(id.String(), n); err != nil {
				e.throw(err)
			}
		}
		return e.proxy(n)
	})
	e.vm.Set("scene", obj)
}

// bag exports a JS object argument as an attribute bag.
func (e *Engine) bag(v goja.Value) attr.Bag {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return attr.Bag{}
	}
	m, ok := v.Export().(map[string]any)
	if !ok {
		panic(e.vm.NewTypeError("attributes must be an object"))
	}
	return attr.Bag(m)
}

// proxy returns the JS object for n, creating it on first use so the same
// node always maps to the same object.
func (e *Engine) proxy(n view.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	if obj, ok := e.proxies[n]; ok {
		return obj
	}

	obj := e.vm.NewObject()
	obj.DefineAccessorProperty("kind", e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(scene.Kind(n))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("id", e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(e.scene.IDOf(n))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("measured", e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.size(n.MeasuredSize())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("bounds", e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.rect(n.Bounds())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("set", func(call goja.FunctionCall) goja.Value {
		if err := e.scene.Builder().Apply(n, e.bag(call.Argument(0))); err != nil {
			e.throw(err)
		}
		return obj
	})

	switch n := n.(type) {
	case *widget.BoxGrid:
		e.gridMethods(obj, n)
	case *widget.DoubleImage:
		e.doubleMethods(obj, n)
	case *widget.AspectImage:
		obj.Set("setContent", func(call goja.FunctionCall) goja.Value {
			n.SetContent(e.content(call.Argument(0)))
			return obj
		})
	}

	e.proxies[n] = obj
	return obj
}

func (e *Engine) gridMethods(obj *goja.Object, g *widget.BoxGrid) {
	obj.Set("addChild", func(call goja.FunctionCall) goja.Value {
		child := e.node(call.Argument(0))
		var err error
		if idx := call.Argument(1); goja.IsUndefined(idx) {
			err = g.AddChild(child)
		} else {
			err = g.InsertChild(int(idx.ToInteger()), child)
		}
		if err != nil {
			e.throw(err)
		}
		return obj
	})
	obj.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		return e.vm.ToValue(g.RemoveChild(e.node(call.Argument(0))))
	})
	obj.Set("childAt", func(call goja.FunctionCall) goja.Value {
		return e.proxy(g.ChildAt(int(call.Argument(0).ToInteger())))
	})
	obj.Set("childCount", func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(g.ChildCount())
	})
	obj.Set("setColumns", func(call goja.FunctionCall) goja.Value {
		if err := g.SetColumns(int(call.Argument(0).ToInteger())); err != nil {
			e.throw(err)
		}
		return obj
	})
}

func (e *Engine) doubleMethods(obj *goja.Object, d *widget.DoubleImage) {
	obj.Set("setText", func(call goja.FunctionCall) goja.Value {
		d.SetText(call.Argument(0).String())
		return obj
	})
	obj.Set("setSpacing", func(call goja.FunctionCall) goja.Value {
		d.SetSpacing(int(call.Argument(0).ToInteger()))
		return obj
	})
	obj.Set("setLeft", func(call goja.FunctionCall) goja.Value {
		d.SetLeft(e.content(call.Argument(0)))
		return obj
	})
	obj.Set("setRight", func(call goja.FunctionCall) goja.Value {
		d.SetRight(e.content(call.Argument(0)))
		return obj
	})
	obj.DefineAccessorProperty("text", e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(d.Text())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// node maps a proxy back to its node.
func (e *Engine) node(v goja.Value) view.Node {
	obj, ok := v.(*goja.Object)
	if ok {
		for n, p := range e.proxies {
			if p == obj {
				return n
			}
		}
	}
	panic(e.vm.NewTypeError(fmt.Sprintf("%s is not a scene node", v)))
}

// content resolves an image handle; null or undefined clears the content.
func (e *Engine) content(v goja.Value) view.Content {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	c, err := e.scene.Builder().Resolver().Resolve(v.String())
	if err != nil {
		e.throw(err)
	}
	return c
}

func (e *Engine) size(s geom.Size) goja.Value {
	return e.vm.ToValue(map[string]any{"width": s.Width, "height": s.Height})
}

func (e *Engine) rect(r geom.Rect) goja.Value {
	return e.vm.ToValue(map[string]any{
		"left": r.Left, "top": r.Top, "right": r.Right, "bottom": r.Bottom,
		"width": r.Width(), "height": r.Height(),
	})
}
